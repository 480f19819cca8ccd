// Package seed loads holiday lists from YAML files.
package seed

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/model"
)

type file struct {
	Holidays []holiday `yaml:"holidays"`
}

type holiday struct {
	Name        string `yaml:"name"`
	Date        string `yaml:"date"`
	Type        string `yaml:"type"`
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
}

var validTypes = map[string]bool{
	model.HolidayFull:       true,
	model.HolidayRestricted: true,
	model.HolidayHalf:       true,
}

// LoadHolidays reads and validates a holiday seed file. Type defaults to a
// full holiday and color to the type's color.
func LoadHolidays(path string) ([]model.Holiday, error) {
	if path == "" {
		return nil, errors.New("seed path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make([]model.Holiday, 0, len(f.Holidays))
	for i, h := range f.Holidays {
		if h.Name == "" {
			return nil, fmt.Errorf("holiday %d: name is empty", i)
		}
		if _, err := calendar.ParseDate(h.Date); err != nil {
			return nil, fmt.Errorf("holiday %d (%s): %w", i, h.Name, err)
		}
		if h.Type == "" {
			h.Type = model.HolidayFull
		}
		if !validTypes[h.Type] {
			return nil, fmt.Errorf("holiday %d (%s): unknown type %q", i, h.Name, h.Type)
		}
		if h.Color == "" {
			h.Color = model.HolidayColor(h.Type)
		}
		out = append(out, model.Holiday{
			Name:        h.Name,
			Date:        h.Date,
			Type:        h.Type,
			Color:       h.Color,
			Description: h.Description,
		})
	}
	return out, nil
}
