package models

import (
	"time"

	"github.com/google/uuid"
)

type SelectionType string

const (
	SelectionSingle   SelectionType = "single"
	SelectionMultiple SelectionType = "multiple"
)

// OptionMode distinguishes the two mutually exclusive option-input shapes a
// menu item can carry: groups of selectable buttons, or required dropdowns.
type OptionMode string

const (
	OptionModeButtons  OptionMode = "buttons"
	OptionModeDropdown OptionMode = "dropdown"
)

type OptionChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionGroup is one configurable attribute of a menu item (size, sauce, ...).
// Selection and MaxSelections only apply in buttons mode; dropdown groups are
// always single-valued.
type OptionGroup struct {
	Key           string         `json:"key"`
	Label         string         `json:"label"`
	Selection     SelectionType  `json:"selection,omitempty"`
	MaxSelections int            `json:"max_selections,omitempty"`
	Required      bool           `json:"required"`
	Choices       []OptionChoice `json:"choices"`
}

// OptionConfig is the option metadata attached to a menu item flagged as
// having options. Stored alongside the item as a JSON column.
type OptionConfig struct {
	Mode   OptionMode    `json:"mode"`
	Groups []OptionGroup `json:"groups"`
}

type MenuItem struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name" validate:"required,min=2,max=100"`
	Price      float64       `json:"price" validate:"required,gte=0"`
	Category   string        `json:"category" validate:"required"`
	HasOptions bool          `json:"has_options"`
	Options    *OptionConfig `json:"options,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Choice returns the configured choice for a value, if the group offers it.
func (g *OptionGroup) Choice(value string) (OptionChoice, bool) {
	for _, c := range g.Choices {
		if c.Value == value {
			return c, true
		}
	}

	return OptionChoice{}, false
}
