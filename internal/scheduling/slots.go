package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// Slot is a half-open time interval "HH:MM-HH:MM", the atomic bookable unit.
type Slot string

func (s Slot) String() string { return string(s) }

// Slot duration bounds, in minutes.
const (
	DefaultSlotDuration = 30
	MinSlotDuration     = 15
	MaxSlotDuration     = 120
)

// TimeRange is a wall-clock interval with "HH:MM" bounds.
type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Config holds the per-doctor schedule parameters that determine which slots
// can exist on any day. WeeklyOff uses time.Weekday numbering (0=Sunday).
type Config struct {
	SlotDurationMinutes int         `bson:"slotDurationMinutes" json:"slotDurationMinutes"`
	WorkingHours        TimeRange   `bson:"workingHours" json:"workingHours"`
	BreakTime           *TimeRange  `bson:"breakTime,omitempty" json:"breakTime,omitempty"`
	WeeklyOff           []int       `bson:"weeklyOff" json:"weeklyOff"`
	Holidays            []time.Time `bson:"holidays,omitempty" json:"holidays,omitempty"`
}

// Validate reports whether the config is usable for slot generation.
func (c Config) Validate() error {
	if d := c.SlotDurationMinutes; d != 0 && (d < MinSlotDuration || d > MaxSlotDuration) {
		return fmt.Errorf("slot duration must be between %d and %d minutes", MinSlotDuration, MaxSlotDuration)
	}
	start, err := minutesOfDay(c.WorkingHours.Start)
	if err != nil {
		return fmt.Errorf("working hours start: %w", err)
	}
	end, err := minutesOfDay(c.WorkingHours.End)
	if err != nil {
		return fmt.Errorf("working hours end: %w", err)
	}
	if start >= end {
		return fmt.Errorf("working hours start %q must be before end %q", c.WorkingHours.Start, c.WorkingHours.End)
	}
	if c.BreakTime != nil {
		bs, err := minutesOfDay(c.BreakTime.Start)
		if err != nil {
			return fmt.Errorf("break start: %w", err)
		}
		be, err := minutesOfDay(c.BreakTime.End)
		if err != nil {
			return fmt.Errorf("break end: %w", err)
		}
		if bs >= be {
			return fmt.Errorf("break start %q must be before end %q", c.BreakTime.Start, c.BreakTime.End)
		}
	}
	for _, d := range c.WeeklyOff {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekly off day %d out of range", d)
		}
	}
	return nil
}

func (c Config) slotDuration() int {
	if c.SlotDurationMinutes <= 0 {
		return DefaultSlotDuration
	}
	return c.SlotDurationMinutes
}

// GenerateSlots walks a doctor's working hours in slot-duration steps and
// returns every slot that fits, in chronological order. Candidates that would
// run past closing time are dropped, and candidates overlapping the break
// window are skipped with the walk resuming exactly at the break's end. The
// result depends on the config alone; identical configs yield identical
// output. A config with malformed working hours yields an empty list.
func GenerateSlots(cfg Config) []Slot {
	start, err := minutesOfDay(cfg.WorkingHours.Start)
	if err != nil {
		return []Slot{}
	}
	end, err := minutesOfDay(cfg.WorkingHours.End)
	if err != nil {
		return []Slot{}
	}

	breakStart, breakEnd := -1, -1
	if cfg.BreakTime != nil {
		bs, err1 := minutesOfDay(cfg.BreakTime.Start)
		be, err2 := minutesOfDay(cfg.BreakTime.End)
		if err1 == nil && err2 == nil && bs < be {
			breakStart, breakEnd = bs, be
		}
	}

	d := cfg.slotDuration()
	slots := make([]Slot, 0)
	for t := start; t+d <= end; {
		if breakStart >= 0 && t < breakEnd && t+d > breakStart {
			// Overlaps the break; resume at its end so the first slot
			// after the break starts exactly at breakEnd.
			t = breakEnd
			continue
		}
		slots = append(slots, newSlot(t, d))
		t += d
	}
	return slots
}

// ParseSlot validates the "HH:MM-HH:MM" slot grammar and returns the slot
// value. Both bounds must be valid 24-hour times and start must precede end.
func ParseSlot(s string) (Slot, error) {
	_, _, err := slotBounds(s)
	if err != nil {
		return "", err
	}
	return Slot(s), nil
}

func newSlot(start, duration int) Slot {
	return Slot(formatMinutes(start) + "-" + formatMinutes(start+duration))
}

func slotBounds(s string) (start, end int, err error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time slot %q, expected HH:MM-HH:MM", s)
	}
	start, err = minutesOfDay(from)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time slot %q: %v", s, err)
	}
	end, err = minutesOfDay(to)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time slot %q: %v", s, err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("invalid time slot %q: start must be before end", s)
	}
	return start, end, nil
}

func minutesOfDay(hhmm string) (int, error) {
	// time.Parse accepts single-digit hours; the grammar requires HH:MM.
	t, err := time.Parse("15:04", hhmm)
	if err != nil || len(hhmm) != 5 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
