// Package schedule computes PIC workload overlaps for the calendar view.
// The detector is read-only and recomputed on demand; it holds no state.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// DefaultThreshold is the task count above which a PIC's day is overloaded.
const DefaultThreshold = 3

// DateRange is an inclusive calendar interval.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DayLoad is the task count of one PIC on one calendar day.
type DayLoad struct {
	PicID     string    `json:"pic_id"`
	PicName   string    `json:"pic_name"`
	Date      time.Time `json:"date"`
	TaskCount int       `json:"task_count"`
}

// ConflictWarning flags one (PIC, day) pair whose task count exceeds the
// threshold.
type ConflictWarning struct {
	PicID     string    `json:"pic_id"`
	PicName   string    `json:"pic_name"`
	Date      time.Time `json:"date"`
	TaskCount int       `json:"task_count"`
	Message   string    `json:"message"`
}

// DailyLoad computes, for every calendar day in the range and every assigned
// PIC, the number of tasks whose [StartDate, EndDate] interval covers that
// day (inclusive both ends). Results are sorted by date ascending then PIC
// name; days with no load produce no entry.
func DailyLoad(tasks []*entity.Task, dateRange DateRange) []DayLoad {
	loads := []DayLoad{}

	from := dateOnly(dateRange.From)
	to := dateOnly(dateRange.To)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		counts := make(map[string]int)
		names := make(map[string]string)
		for _, task := range tasks {
			if !covers(task, day) {
				continue
			}
			for _, pic := range task.Pics {
				counts[pic.ID]++
				if pic.Name != "" {
					names[pic.ID] = pic.Name
				}
			}
		}

		dayLoads := make([]DayLoad, 0, len(counts))
		for picID, count := range counts {
			dayLoads = append(dayLoads, DayLoad{
				PicID:     picID,
				PicName:   names[picID],
				Date:      day,
				TaskCount: count,
			})
		}
		sort.Slice(dayLoads, func(i, j int) bool {
			return dayLoads[i].PicName < dayLoads[j].PicName
		})
		loads = append(loads, dayLoads...)
	}

	return loads
}

// DetectConflicts flags every (PIC, day) pair in the range whose task count
// exceeds the threshold, one warning each, sorted by date ascending then PIC
// name. A non-positive threshold falls back to DefaultThreshold. An empty
// task set yields an empty list.
func DetectConflicts(tasks []*entity.Task, dateRange DateRange, threshold int) []ConflictWarning {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	warnings := []ConflictWarning{}
	for _, load := range DailyLoad(tasks, dateRange) {
		if load.TaskCount <= threshold {
			continue
		}
		warnings = append(warnings, ConflictWarning{
			PicID:     load.PicID,
			PicName:   load.PicName,
			Date:      load.Date,
			TaskCount: load.TaskCount,
			Message: fmt.Sprintf("%s has %d tasks on %s, above the limit of %d",
				displayName(load.PicName, load.PicID), load.TaskCount, load.Date.Format("2006-01-02"), threshold),
		})
	}

	return warnings
}

// covers reports whether the task's interval includes the day, compared at
// date granularity.
func covers(task *entity.Task, day time.Time) bool {
	start := dateOnly(task.StartDate)
	end := dateOnly(task.EndDate)
	return !day.Before(start) && !day.After(end)
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
