package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlotsCount(t *testing.T) {
	cfg := Config{
		SlotDurationMinutes: 30,
		WorkingHours:        TimeRange{Start: "16:00", End: "18:00"},
	}

	slots := GenerateSlots(cfg)

	assert.Equal(t, []Slot{
		"16:00-16:30",
		"16:30-17:00",
		"17:00-17:30",
		"17:30-18:00",
	}, slots)
}

func TestGenerateSlotsBreakExclusion(t *testing.T) {
	cfg := Config{
		SlotDurationMinutes: 30,
		WorkingHours:        TimeRange{Start: "09:00", End: "17:00"},
		BreakTime:           &TimeRange{Start: "12:00", End: "13:00"},
	}

	slots := GenerateSlots(cfg)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		start, end, err := slotBounds(s.String())
		require.NoError(t, err)
		assert.False(t, start < 13*60 && end > 12*60, "slot %s overlaps the break", s)
	}

	// 09:00-12:00 gives six slots; the very next one starts at the break's end.
	assert.Equal(t, Slot("13:00-13:30"), slots[6])
	assert.Len(t, slots, 14)
}

func TestGenerateSlotsOffsetBreakResumesAtBreakEnd(t *testing.T) {
	// A break not aligned to the slot grid: the walk must resume exactly at
	// 12:45, not at 13:00.
	cfg := Config{
		SlotDurationMinutes: 30,
		WorkingHours:        TimeRange{Start: "09:00", End: "15:00"},
		BreakTime:           &TimeRange{Start: "12:15", End: "12:45"},
	}

	slots := GenerateSlots(cfg)

	assert.Contains(t, slots, Slot("12:45-13:15"))
	assert.NotContains(t, slots, Slot("12:00-12:30"))
	assert.NotContains(t, slots, Slot("12:30-13:00"))
}

func TestGenerateSlotsNoOverrun(t *testing.T) {
	cfg := Config{
		SlotDurationMinutes: 30,
		WorkingHours:        TimeRange{Start: "09:00", End: "09:45"},
	}

	assert.Equal(t, []Slot{"09:00-09:30"}, GenerateSlots(cfg))
}

func TestGenerateSlotsEmptyResults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "duration longer than window",
			cfg: Config{
				SlotDurationMinutes: 60,
				WorkingHours:        TimeRange{Start: "10:00", End: "10:45"},
			},
		},
		{
			name: "break covers working hours",
			cfg: Config{
				SlotDurationMinutes: 30,
				WorkingHours:        TimeRange{Start: "09:00", End: "12:00"},
				BreakTime:           &TimeRange{Start: "09:00", End: "12:00"},
			},
		},
		{
			name: "malformed working hours",
			cfg: Config{
				SlotDurationMinutes: 30,
				WorkingHours:        TimeRange{Start: "nine", End: "17:00"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, GenerateSlots(tt.cfg))
		})
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	cfg := Config{
		SlotDurationMinutes: 45,
		WorkingHours:        TimeRange{Start: "08:30", End: "16:30"},
		BreakTime:           &TimeRange{Start: "12:00", End: "13:30"},
	}

	assert.Equal(t, GenerateSlots(cfg), GenerateSlots(cfg))
}

func TestGenerateSlotsDefaultDuration(t *testing.T) {
	cfg := Config{WorkingHours: TimeRange{Start: "09:00", End: "10:00"}}

	assert.Equal(t, []Slot{"09:00-09:30", "09:30-10:00"}, GenerateSlots(cfg))
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"10:00-10:30", false},
		{"00:00-23:59", false},
		{"09:00", true},
		{"9:00-9:30", true},
		{"25:00-26:00", true},
		{"10:30-10:00", true},
		{"10:00-10:00", true},
		{"10:00 - 10:30", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			slot, err := ParseSlot(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.in, slot.String())
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		SlotDurationMinutes: 30,
		WorkingHours:        TimeRange{Start: "09:00", End: "17:00"},
		BreakTime:           &TimeRange{Start: "12:00", End: "13:00"},
		WeeklyOff:           []int{0},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"duration below minimum", func(c *Config) { c.SlotDurationMinutes = 10 }},
		{"duration above maximum", func(c *Config) { c.SlotDurationMinutes = 180 }},
		{"start after end", func(c *Config) { c.WorkingHours = TimeRange{Start: "18:00", End: "09:00"} }},
		{"inverted break", func(c *Config) { c.BreakTime = &TimeRange{Start: "14:00", End: "13:00"} }},
		{"weekday out of range", func(c *Config) { c.WeeklyOff = []int{7} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
