package uistate

import (
	"sort"
	"time"

	"github.com/bistro-gourmand/ordering-platform/pkg/clock"
)

type FieldState int

const (
	FieldUntouched FieldState = iota
	FieldValid
	FieldInvalid
)

// Field is one form input with its validation rule. State moves untouched →
// valid/invalid on blur; while invalid, every input re-runs validation so
// the error clears as soon as the value becomes acceptable.
type Field struct {
	Name     string
	Validate func(value string) bool

	value string
	state FieldState
}

func (f *Field) State() FieldState {
	return f.state
}

func (f *Field) Value() string {
	return f.value
}

// Input updates the value. Only fields already marked invalid revalidate on
// input; untouched and valid fields wait for the next blur.
func (f *Field) Input(value string) {
	f.value = value

	if f.state == FieldInvalid {
		f.revalidate()
	}
}

// Blur validates the current value, whatever the prior state.
func (f *Field) Blur() {
	f.revalidate()
}

func (f *Field) revalidate() {
	if f.Validate == nil || f.Validate(f.value) {
		f.state = FieldValid
	} else {
		f.state = FieldInvalid
	}
}

func (f *Field) reset() {
	f.value = ""
	f.state = FieldUntouched
}

// Form runs whole-form validation and models the submission acknowledgment:
// a successful submit schedules a delayed reset to untouched through the
// Clock, so tests can advance time deterministically.
type Form struct {
	fields   map[string]*Field
	order    []string
	clock    clock.Clock
	ackDelay time.Duration

	submitting bool
	cancelAck  func()
}

func NewForm(clk clock.Clock, ackDelay time.Duration, fields ...*Field) *Form {
	f := &Form{
		fields:   make(map[string]*Field, len(fields)),
		clock:    clk,
		ackDelay: ackDelay,
	}

	for _, field := range fields {
		f.fields[field.Name] = field
		f.order = append(f.order, field.Name)
	}

	return f
}

func (f *Form) Field(name string) *Field {
	return f.fields[name]
}

// ValidateAll runs every field validator and returns the name of the first
// invalid field in declaration order (the focus/scroll target), or "".
func (f *Form) ValidateAll() string {
	first := ""

	for _, name := range f.order {
		field := f.fields[name]
		field.Blur()

		if field.state == FieldInvalid && first == "" {
			first = name
		}
	}

	return first
}

// Submit validates the whole form. On success it enters the submitting
// state and schedules the reset after the acknowledgment delay; the
// returned disposer cancels that pending reset. On failure it returns the
// first invalid field.
func (f *Form) Submit() (firstInvalid string, dispose func()) {

	if first := f.ValidateAll(); first != "" {
		return first, nil
	}

	f.submitting = true

	f.cancelAck = f.clock.AfterFunc(f.ackDelay, func() {
		f.Reset()
	})

	return "", f.cancelAck
}

func (f *Form) Submitting() bool {
	return f.submitting
}

// Reset returns every field to untouched and leaves the submitting state.
func (f *Form) Reset() {
	f.submitting = false

	if f.cancelAck != nil {
		f.cancelAck()
		f.cancelAck = nil
	}

	names := make([]string, 0, len(f.fields))
	for name := range f.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f.fields[name].reset()
	}
}
