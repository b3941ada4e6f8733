package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

var csvHeader = []string{"day", "date", "task_id", "task", "hours", "due_in", "color", "status"}

// CSV writes one row per booked slot, then a row for every unscheduled
// shortfall with an empty day.
func CSV(w io.Writer, s *schedule.Schedule) error {
	if s == nil {
		return fmt.Errorf("no schedule has been built")
	}
	late := make(map[int]bool, len(s.Late))
	for _, t := range s.Late {
		late[t.ID] = true
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, d := range s.Days {
		for _, slot := range d.Slots {
			status := "on time"
			if slot.Task.DueIn < d.Index {
				status = "late"
			} else if late[slot.Task.ID] {
				status = "partly late"
			}
			row := []string{
				strconv.Itoa(d.Index), d.Date.Format("2006-01-02"),
				strconv.Itoa(slot.Task.ID), slot.Task.Title,
				strconv.Itoa(slot.Hours), strconv.Itoa(slot.Task.DueIn),
				slot.Task.Color.String(), status,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	for _, sf := range s.Unscheduled {
		row := []string{
			"", "", strconv.Itoa(sf.Task.ID), sf.Task.Title,
			strconv.Itoa(sf.Hours), strconv.Itoa(sf.Task.DueIn),
			sf.Task.Color.String(), "unscheduled",
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes CSV(s) to path.
func WriteCSVFile(path string, s *schedule.Schedule) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := CSV(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
