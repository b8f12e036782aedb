// Package clock derives the watchface's time, weekday and date strings.
package clock

import (
	"time"

	"github.com/five82/dontpanic/internal/textbuf"
)

// Buffer capacities, sized like the watch's static text buffers.
const (
	TimeCap    = len("00:00") + 1
	WeekdayCap = len("dayLength") + 1
	DateCap    = 10
)

const (
	layout24h  = "15:04"
	layout12h  = "03:04"
	layoutDate = "Jan _2"
)

// Strings is the formatted output for one instant.
type Strings struct {
	Time    string
	Weekday string
	Date    string
}

// Format renders t. The time is always zero-padded HH:MM without an AM/PM
// marker; use24h selects 00-23 hours, otherwise 01-12.
func Format(t time.Time, use24h bool) Strings {
	layout := layout12h
	if use24h {
		layout = layout24h
	}
	return Strings{
		Time:    t.Format(layout),
		Weekday: t.Weekday().String(),
		Date:    t.Format(layoutDate),
	}
}

// Display owns the three text buffers the clock layers point at.
type Display struct {
	Time    *textbuf.Buffer
	Weekday *textbuf.Buffer
	Date    *textbuf.Buffer
}

// NewDisplay allocates empty buffers.
func NewDisplay() *Display {
	return &Display{
		Time:    textbuf.New(TimeCap),
		Weekday: textbuf.New(WeekdayCap),
		Date:    textbuf.New(DateCap),
	}
}

// Update rewrites the buffers for t and reports whether any text changed.
func (d *Display) Update(t time.Time, use24h bool) bool {
	s := Format(t, use24h)
	changed := d.Time.Set(s.Time)
	changed = d.Weekday.Set(s.Weekday) || changed
	changed = d.Date.Set(s.Date) || changed
	return changed
}

// Strings returns the current buffer contents.
func (d *Display) Strings() Strings {
	return Strings{
		Time:    d.Time.String(),
		Weekday: d.Weekday.String(),
		Date:    d.Date.String(),
	}
}

// UntilNextMinute returns the wait from t to the next minute boundary.
func UntilNextMinute(t time.Time) time.Duration {
	return t.Truncate(time.Minute).Add(time.Minute).Sub(t)
}
