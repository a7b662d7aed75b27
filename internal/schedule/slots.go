package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSlots is the hourly range offered by the date picker.
const DefaultSlots = "13:00-18:00"

// Slot is a bookable start time.
type Slot struct {
	Hour   int
	Minute int
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// ParseSlot reads "HH:MM".
func ParseSlot(v string) (Slot, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok {
		return Slot{}, fmt.Errorf("slot %q: want HH:MM", v)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Slot{}, fmt.Errorf("slot %q: bad hour", v)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return Slot{}, fmt.Errorf("slot %q: bad minute", v)
	}
	return Slot{Hour: h, Minute: m}, nil
}

// ParseSlots accepts either an hourly range "13:00-18:00" (both ends
// included) or a comma separated list "09:00,10:30".
func ParseSlots(v string) ([]Slot, error) {
	if from, to, ok := strings.Cut(v, "-"); ok {
		start, err := ParseSlot(from)
		if err != nil {
			return nil, err
		}
		end, err := ParseSlot(to)
		if err != nil {
			return nil, err
		}
		if end.Hour < start.Hour || (end.Hour == start.Hour && end.Minute < start.Minute) {
			return nil, fmt.Errorf("slots %q: range ends before it starts", v)
		}
		var out []Slot
		for h := start.Hour; h <= end.Hour; h++ {
			s := Slot{Hour: h, Minute: start.Minute}
			if h == end.Hour && s.Minute > end.Minute {
				break
			}
			out = append(out, s)
		}
		return out, nil
	}

	var out []Slot
	seen := make(map[Slot]bool)
	for _, part := range strings.Split(v, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := ParseSlot(part)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("slots %q: empty", v)
	}
	return out, nil
}

func findSlot(slots []Slot, v string) (Slot, bool) {
	s, err := ParseSlot(v)
	if err != nil {
		return Slot{}, false
	}
	for _, c := range slots {
		if c == s {
			return c, true
		}
	}
	return Slot{}, false
}
