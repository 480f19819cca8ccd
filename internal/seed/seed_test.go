package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-calendar-api/internal/model"
	"org-calendar-api/internal/seed"
)

func TestLoadHolidays(t *testing.T) {
	hs, err := seed.LoadHolidays("testdata/holidays.yaml")
	require.NoError(t, err)
	require.Len(t, hs, 3)

	assert.Equal(t, model.Holiday{
		Name: "New Year's Day", Date: "2026-01-01", Type: model.HolidayFull, Color: "#D32F2F",
	}, hs[0])
	assert.Equal(t, "#4CAF50", hs[1].Color)
	assert.Equal(t, "Office open, leave optional", hs[1].Description)
	assert.Equal(t, "#123456", hs[2].Color)
}

func TestLoadHolidaysRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unpadded date", "holidays:\n  - name: X\n    date: 2026-1-1\n"},
		{"no name", "holidays:\n  - date: \"2026-01-01\"\n"},
		{"bad type", "holidays:\n  - name: X\n    date: \"2026-01-01\"\n    type: Floating\n"},
		{"not yaml", "holidays: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "h.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := seed.LoadHolidays(path)
			assert.Error(t, err)
		})
	}

	_, err := seed.LoadHolidays("testdata/missing.yaml")
	assert.Error(t, err)
}
