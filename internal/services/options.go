package service

import (
	"fmt"

	"github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
)

// CollectOptions validates the selections against a menu item's option
// metadata and returns the collected {key,label,value} triples in group
// order. A violation aborts the add: the returned error carries the
// offending group keys, first offender first, and nothing is collected.
func CollectOptions(item *models.MenuItem, selections []models.OptionSelection) ([]models.LineItemOption, error) {

	if !item.HasOptions || item.Options == nil {
		if len(selections) > 0 {
			return nil, errors.BadRequestError("This item does not take options")
		}

		return nil, nil
	}

	selected := make(map[string][]string, len(selections))
	for _, sel := range selections {
		selected[sel.Key] = sel.Values
	}

	var collected []models.LineItemOption
	var offenders []string

	for _, group := range item.Options.Groups {

		values := selected[group.Key]

		if invalid := validateGroup(item.Options.Mode, &group, values); invalid {
			offenders = append(offenders, group.Key)
			continue
		}

		for _, value := range values {

			choice, ok := group.Choice(value)
			if !ok {
				offenders = append(offenders, group.Key)
				break
			}

			collected = append(collected, models.LineItemOption{
				Key:   group.Key,
				Label: group.Label,
				Value: choice.Value,
			})
		}
	}

	// Selections for groups the item does not define are rejected outright.
	for _, sel := range selections {
		if !hasGroup(item.Options.Groups, sel.Key) {
			return nil, errors.BadRequestError(fmt.Sprintf("Unknown option group %q", sel.Key))
		}
	}

	if len(offenders) > 0 {
		return nil, errors.OptionInvalidError("Invalid option selection", offenders...)
	}

	return collected, nil
}

func validateGroup(mode models.OptionMode, group *models.OptionGroup, values []string) bool {

	switch {
	case mode == models.OptionModeDropdown:
		// Dropdown selectors are single-valued; a required one must have a
		// value chosen.
		if group.Required && len(values) == 0 {
			return true
		}

		return len(values) > 1

	case group.Selection == models.SelectionSingle:
		if group.Required && len(values) == 0 {
			return true
		}

		return len(values) > 1

	case group.Selection == models.SelectionMultiple:
		if group.Required && len(values) == 0 {
			return true
		}

		return group.MaxSelections > 0 && len(values) > group.MaxSelections
	}

	return false
}

func hasGroup(groups []models.OptionGroup, key string) bool {
	for _, g := range groups {
		if g.Key == key {
			return true
		}
	}

	return false
}
