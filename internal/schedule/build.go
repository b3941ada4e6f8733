package schedule

import (
	"fmt"
	"time"

	"github.com/ahrtr/gocontainer/queue/priorityqueue"
)

// Strategy decides where inside its window a task's hours are placed.
type Strategy int

const (
	// Compact fills the earliest days first.
	Compact Strategy = iota
	// Balanced spreads hours evenly across every day up to the due date.
	Balanced
	// Latest fills the days closest to the due date first.
	Latest
)

func (s Strategy) String() string {
	switch s {
	case Compact:
		return "compact"
	case Balanced:
		return "balanced"
	case Latest:
		return "latest"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) Validate() error {
	if s < Compact || s > Latest {
		return fmt.Errorf("schedule strategy must be between %d and %d, got %d", Compact, Latest, s)
	}
	return nil
}

// Options controls a Build.
type Options struct {
	HoursPerDay [7]int // indexed by time.Weekday
	MaxDays     int
	Start       time.Time
}

// DefaultOptions is a 14 day horizon with eight hour weekdays and four hour weekends.
func DefaultOptions() Options {
	return Options{
		HoursPerDay: [7]int{4, 8, 8, 8, 8, 8, 4},
		MaxDays:     14,
	}
}

// Slot is a block of hours of one task on one day.
type Slot struct {
	Task  *Task
	Hours int
}

// Day is one column of the built schedule.
type Day struct {
	Index    int
	Date     time.Time
	Capacity int
	Slots    []Slot
}

// Used returns the hours booked on the day.
func (d *Day) Used() int {
	n := 0
	for _, s := range d.Slots {
		n += s.Hours
	}
	return n
}

// Shortfall records hours that did not fit before the horizon ended.
type Shortfall struct {
	Task  *Task
	Hours int
}

// Schedule is the output of Build.
type Schedule struct {
	Strategy    Strategy
	Days        []*Day
	Late        []*Task // tasks with hours placed after their due day
	Unscheduled []Shortfall
}

// taskOrder puts the nearest due date first, then the biggest task, then the
// oldest one.
type taskOrder struct{}

func (taskOrder) Compare(v1, v2 interface{}) (int, error) {
	a, ok1 := v1.(*Task)
	b, ok2 := v2.(*Task)
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("taskOrder: unexpected types %T, %T", v1, v2)
	}
	switch {
	case a.DueIn != b.DueIn:
		return a.DueIn - b.DueIn, nil
	case a.Hours != b.Hours:
		return b.Hours - a.Hours, nil
	default:
		return a.ID - b.ID, nil
	}
}

// Build lays the board's tasks out over opts.MaxDays days and stores the
// result as b.Last.
func (b *Board) Build(opts Options) (*Schedule, error) {
	if err := b.Strategy.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxDays <= 0 {
		return nil, fmt.Errorf("schedule horizon must be positive, got %d days", opts.MaxDays)
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	s := &Schedule{Strategy: b.Strategy}
	free := make([]int, opts.MaxDays)
	for i := range opts.MaxDays {
		date := start.AddDate(0, 0, i)
		capacity := opts.HoursPerDay[date.Weekday()]
		s.Days = append(s.Days, &Day{Index: i, Date: date, Capacity: capacity})
		free[i] = capacity
	}

	pq := priorityqueue.New().WithComparator(taskOrder{})
	for _, t := range b.Tasks {
		pq.Add(t)
	}
	for !pq.IsEmpty() {
		t := pq.Poll().(*Task)
		last := min(t.DueIn, opts.MaxDays-1)
		left := place(s.Days, free, t, t.Hours, 0, last, b.Strategy)
		if left > 0 && last+1 < opts.MaxDays {
			left = place(s.Days, free, t, left, last+1, opts.MaxDays-1, Compact)
			if left < t.Hours {
				s.Late = append(s.Late, t)
			}
		}
		if left > 0 {
			s.Unscheduled = append(s.Unscheduled, Shortfall{Task: t, Hours: left})
		}
	}
	b.Last = s
	return s, nil
}

// place books up to hours of t into days[from..to] and returns what is left.
func place(days []*Day, free []int, t *Task, hours, from, to int, strategy Strategy) int {
	if from > to {
		return hours
	}
	book := func(i, h int) {
		free[i] -= h
		hours -= h
		d := days[i]
		if n := len(d.Slots); n > 0 && d.Slots[n-1].Task == t {
			d.Slots[n-1].Hours += h
			return
		}
		d.Slots = append(d.Slots, Slot{Task: t, Hours: h})
	}

	switch strategy {
	case Latest:
		for i := to; i >= from && hours > 0; i-- {
			if h := min(free[i], hours); h > 0 {
				book(i, h)
			}
		}
	case Balanced:
		for hours > 0 {
			progressed := false
			for i := from; i <= to && hours > 0; i++ {
				if free[i] > 0 {
					book(i, 1)
					progressed = true
				}
			}
			if !progressed {
				break
			}
		}
	default:
		for i := from; i <= to && hours > 0; i++ {
			if h := min(free[i], hours); h > 0 {
				book(i, h)
			}
		}
	}
	return hours
}
