package prompt

import "time"

// Clock exposes the current time to prompt templates through the .Time field:
//
//	Today is {{.Time.Today}} ({{.Time.Weekday}}).
//	Current time: {{.Time.Format "3:04 PM"}}
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns today's date as YYYY-MM-DD.
	Today() string

	// Weekday returns the day of the week, e.g. "Monday".
	Weekday() string

	// Format returns the current time formatted with a Go time layout.
	Format(layout string) string
}

// SystemClock reads the system clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time                { return time.Now() }
func (c SystemClock) Today() string               { return c.Now().Format("2006-01-02") }
func (c SystemClock) Weekday() string             { return c.Now().Weekday().String() }
func (c SystemClock) Format(layout string) string { return c.Now().Format(layout) }

// FixedClock always reports the same instant. Useful for deterministic prompts in tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time              { return c.T }
func (c FixedClock) Today() string               { return c.T.Format("2006-01-02") }
func (c FixedClock) Weekday() string             { return c.T.Weekday().String() }
func (c FixedClock) Format(layout string) string { return c.T.Format(layout) }

var (
	_ Clock = SystemClock{}
	_ Clock = FixedClock{}
)
