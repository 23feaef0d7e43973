// Package schedule handles the five cron schedule fields and the
// special-time aliases that replace them.
package schedule

import (
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/djatlantic/cronset/pkg/errors"
)

// Wildcard is the default value for an unset schedule field
const Wildcard = "*"

// Fields holds the five cron schedule fields. Values pass through to
// the rendered entry verbatim; validation is opt-in via Validate.
type Fields struct {
	Minute  string
	Hour    string
	Day     string
	Month   string
	Weekday string
}

// WithDefaults returns a copy with empty fields set to the wildcard
func (f Fields) WithDefaults() Fields {
	for _, p := range []*string{&f.Minute, &f.Hour, &f.Day, &f.Month, &f.Weekday} {
		if *p == "" {
			*p = Wildcard
		}
	}
	return f
}

// Explicit reports whether any field was narrowed past the wildcard
func (f Fields) Explicit() bool {
	for _, v := range []string{f.Minute, f.Hour, f.Day, f.Month, f.Weekday} {
		if v != "" && v != Wildcard {
			return true
		}
	}
	return false
}

// Join renders the five fields space-separated, defaults applied
func (f Fields) Join() string {
	d := f.WithDefaults()
	return strings.Join([]string{d.Minute, d.Hour, d.Day, d.Month, d.Weekday}, " ")
}

// SpecialTimes lists the accepted special-time keywords
var SpecialTimes = []string{
	"reboot",
	"yearly",
	"annually",
	"monthly",
	"weekly",
	"daily",
	"hourly",
}

// IsSpecialTime reports whether s is a known special-time keyword
func IsSpecialTime(s string) bool {
	for _, k := range SpecialTimes {
		if s == k {
			return true
		}
	}
	return false
}

// CheckSpecialTime validates a special-time keyword
func CheckSpecialTime(s string) error {
	if !IsSpecialTime(s) {
		return errors.Newf(errors.ErrValidation,
			"unknown special time %q (expected one of %s)", s, strings.Join(SpecialTimes, ", "))
	}
	return nil
}

// Validate parses the joined fields with the standard 5-field cron
// parser and reports syntax errors. This is opt-in; rendering never
// validates.
func Validate(f Fields) error {
	if _, err := cron.ParseStandard(f.Join()); err != nil {
		return errors.Wrapf(err, errors.ErrValidation,
			"invalid schedule %q", f.Join())
	}
	return nil
}
