package scheduling

import "time"

// StartOfDay truncates t to midnight in its own location. All day-level
// comparisons in the scheduler go through this.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsDateAvailable reports whether a doctor with the given config can have
// slots on date. The caller supplies "now" so the check stays independent of
// the ambient clock. Time-of-day on both arguments is ignored: a date is
// unavailable when its calendar day is before now's, falls on a weekly off
// day, or matches a holiday.
func IsDateAvailable(now, date time.Time, cfg Config) bool {
	if StartOfDay(date).Before(StartOfDay(now)) {
		return false
	}
	weekday := int(date.Weekday())
	for _, off := range cfg.WeeklyOff {
		if off == weekday {
			return false
		}
	}
	for _, holiday := range cfg.Holidays {
		if sameDay(holiday, date) {
			return false
		}
	}
	return true
}

// AvailableSlots returns the generated slots minus the booked set, preserving
// chronological order. Slots falling outside the configured working hours are
// re-checked and dropped defensively.
func AvailableSlots(cfg Config, booked map[Slot]struct{}) []Slot {
	start, err := minutesOfDay(cfg.WorkingHours.Start)
	if err != nil {
		return []Slot{}
	}
	end, err := minutesOfDay(cfg.WorkingHours.End)
	if err != nil {
		return []Slot{}
	}

	available := make([]Slot, 0)
	for _, slot := range GenerateSlots(cfg) {
		s, e, err := slotBounds(slot.String())
		if err != nil || s < start || e > end {
			continue
		}
		if _, taken := booked[slot]; taken {
			continue
		}
		available = append(available, slot)
	}
	return available
}
