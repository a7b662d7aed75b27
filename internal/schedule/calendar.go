package schedule

import (
	"fmt"
	"time"
)

// Month is the month shown by the date picker.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Next() Month { return m.add(1) }
func (m Month) Prev() Month { return m.add(-1) }

func (m Month) add(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return MonthOf(t)
}

// Days is the number of days in m.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Grid lays m out in weeks starting on Monday. Cells outside the month
// are 0; the length is always a multiple of 7.
func (m Month) Grid() []int {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	days := m.Days()

	cells := make([]int, offset, offset+days+6)
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}
	return cells
}
