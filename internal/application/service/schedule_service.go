package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/schedule"
)

// ScheduleService answers calendar queries over task workload
type ScheduleService interface {
	// CalendarConflicts flags PICs whose per-day task count in the range
	// exceeds the threshold. A non-positive threshold uses the configured
	// default.
	CalendarConflicts(ctx context.Context, from, to time.Time, threshold int) ([]schedule.ConflictWarning, error)
}

type scheduleServiceImpl struct {
	taskRepo         port.TaskRepository
	defaultThreshold int
	logger           Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(taskRepo port.TaskRepository, defaultThreshold int, logger Logger) ScheduleService {
	if defaultThreshold <= 0 {
		defaultThreshold = schedule.DefaultThreshold
	}
	return &scheduleServiceImpl{
		taskRepo:         taskRepo,
		defaultThreshold: defaultThreshold,
		logger:           logger,
	}
}

// CalendarConflicts loads the tasks overlapping the range and recomputes the
// warnings on demand; nothing is cached.
func (s *scheduleServiceImpl) CalendarConflicts(ctx context.Context, from, to time.Time, threshold int) ([]schedule.ConflictWarning, error) {
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}

	tasks, err := s.taskRepo.ListOverlapping(ctx, from, to)
	if err != nil {
		s.logger.Error("Failed to load tasks for calendar", "error", err)
		return nil, fmt.Errorf("load overlapping tasks: %w", err)
	}

	warnings := schedule.DetectConflicts(tasks, schedule.DateRange{From: from, To: to}, threshold)
	s.logger.Info("Calendar conflicts computed",
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"task_count", len(tasks),
		"warning_count", len(warnings),
	)
	return warnings, nil
}
