package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	workingHoursPattern = regexp.MustCompile(`^\d{2}:\d{2} - \d{2}:\d{2}$`)
	contactPattern      = regexp.MustCompile(`^\d{8,15}$`)
)

// Weekdays are the accepted working day names, Monday first
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// Register adds the custom rules to v:
//
//	working_hours  "HH:MM - HH:MM" with a valid start and end
//	clock          "HH:MM"
//	contact        8 to 15 digits
//	weekday        an English day name
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"working_hours": func(fl validator.FieldLevel) bool {
			_, _, err := ParseWorkingHours(fl.Field().String())
			return err == nil
		},
		"clock": func(fl validator.FieldLevel) bool {
			_, err := ParseClock(fl.Field().String())
			return err == nil
		},
		"contact": func(fl validator.FieldLevel) bool {
			return contactPattern.MatchString(fl.Field().String())
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return IsWeekday(fl.Field().String())
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin installs the custom rules on gin's binding validator
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}
	return Register(v)
}

// New returns a validator reading the same "binding" tags gin does
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// ParseClock parses "HH:MM" into minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseWorkingHours parses "HH:MM - HH:MM" into start and end minutes since midnight.
// An end before the start is a shift that runs past midnight.
func ParseWorkingHours(s string) (start, end int, err error) {
	if !workingHoursPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("invalid working hours %q, expected HH:MM - HH:MM", s)
	}
	if start, err = ParseClock(s[:5]); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(s[8:]); err != nil {
		return 0, 0, err
	}
	if end == start {
		return 0, 0, fmt.Errorf("working hours %q start and end at the same time", s)
	}
	return start, end, nil
}

// WithinWorkingHours reports whether minutes since midnight fall inside a shift
func WithinWorkingHours(start, end, minutes int) bool {
	if start < end {
		return minutes >= start && minutes <= end
	}
	return minutes >= start || minutes <= end
}

// IsWeekday reports whether day is an English day name
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
