package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkingHours(t *testing.T) {
	start, end, err := ParseWorkingHours("08:00 - 16:30")
	require.NoError(t, err)
	assert.Equal(t, 8*60, start)
	assert.Equal(t, 16*60+30, end)

	start, end, err = ParseWorkingHours("22:00 - 06:00")
	require.NoError(t, err)
	assert.Equal(t, 22*60, start)
	assert.Equal(t, 6*60, end)

	for _, bad := range []string{"8:00 - 16:00", "08:00-16:00", "25:00 - 26:00", "08:00 - 08:00", ""} {
		_, _, err := ParseWorkingHours(bad)
		assert.Error(t, err, bad)
	}
}

func TestWithinWorkingHours(t *testing.T) {
	tests := []struct {
		name     string
		hours    string
		at       int
		expected bool
	}{
		{"day shift inside", "08:00 - 16:00", 12 * 60, true},
		{"day shift boundary", "08:00 - 16:00", 16 * 60, true},
		{"day shift after", "08:00 - 16:00", 17 * 60, false},
		{"night shift evening", "22:00 - 06:00", 23 * 60, true},
		{"night shift morning", "22:00 - 06:00", 5 * 60, true},
		{"night shift afternoon", "22:00 - 06:00", 14 * 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ParseWorkingHours(tt.hours)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, WithinWorkingHours(start, end, tt.at))
		})
	}
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:45")
	require.NoError(t, err)
	assert.Equal(t, 585, minutes)

	_, err = ParseClock("9:45")
	assert.Error(t, err)
	_, err = ParseClock("09:60")
	assert.Error(t, err)
}

type staffForm struct {
	Hours   string   `binding:"required,working_hours"`
	Contact string   `binding:"required,contact"`
	Days    []string `binding:"required,min=1,dive,weekday"`
	At      string   `binding:"omitempty,clock"`
}

func TestNew_CustomRules(t *testing.T) {
	v := New()

	valid := staffForm{Hours: "08:00 - 17:00", Contact: "0612345678", Days: []string{"Monday", "Friday"}, At: "10:15"}
	assert.NoError(t, v.Struct(valid))

	tests := map[string]staffForm{
		"bad hours":   {Hours: "8h-17h", Contact: "0612345678", Days: []string{"Monday"}},
		"short phone": {Hours: "08:00 - 17:00", Contact: "12345", Days: []string{"Monday"}},
		"letters":     {Hours: "08:00 - 17:00", Contact: "06123abc45", Days: []string{"Monday"}},
		"bad day":     {Hours: "08:00 - 17:00", Contact: "0612345678", Days: []string{"Funday"}},
		"no days":     {Hours: "08:00 - 17:00", Contact: "0612345678", Days: []string{}},
		"bad clock":   {Hours: "08:00 - 17:00", Contact: "0612345678", Days: []string{"Monday"}, At: "noon"},
	}
	for name, form := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, v.Struct(form))
		})
	}
}
