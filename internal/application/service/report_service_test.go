package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

func TestReportService_WorkloadReport(t *testing.T) {
	pics := []entity.PicRef{{ID: "u-assigned", Name: "Assigned"}}
	taskRepo := &mockTaskRepo{
		listOverlappingFunc: func(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
			tasks := make([]*entity.Task, 4)
			for i := range tasks {
				tasks[i] = &entity.Task{
					ID:        "task-" + string(rune('a'+i)),
					Pics:      pics,
					StartDate: scheduleDay(2),
					EndDate:   scheduleDay(2),
				}
			}
			return tasks, nil
		},
	}

	svc := NewReportService(taskRepo, 3, "", &mockLogger{})

	f, err := svc.WorkloadReport(context.Background(), scheduleDay(1), scheduleDay(3), 3)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Workload", "Conflicts"}, f.GetSheetList())

	for cell, want := range map[string]string{
		"A1": "Date", "B1": "PIC", "C1": "Tasks",
		"A2": "2025-03-02", "B2": "Assigned", "C2": "4",
	} {
		got, err := f.GetCellValue("Workload", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "Workload!%s", cell)
	}

	for cell, want := range map[string]string{
		"A1": "Date", "B1": "PIC", "C1": "Tasks", "D1": "Warning",
		"A2": "2025-03-02", "B2": "Assigned", "C2": "4",
		"D2": "Assigned has 4 tasks on 2025-03-02, above the limit of 3",
	} {
		got, err := f.GetCellValue("Conflicts", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "Conflicts!%s", cell)
	}
}

func TestReportService_EmptyRange(t *testing.T) {
	taskRepo := &mockTaskRepo{
		listOverlappingFunc: func(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
			return nil, nil
		},
	}

	svc := NewReportService(taskRepo, 3, "", &mockLogger{})

	f, err := svc.WorkloadReport(context.Background(), scheduleDay(1), scheduleDay(3), 3)
	require.NoError(t, err)
	defer f.Close()

	// Headers are written even when there is no data.
	got, err := f.GetCellValue("Workload", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", got)

	got, err = f.GetCellValue("Workload", "A2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReportService_RepoError(t *testing.T) {
	dbErr := errors.New("disk I/O error")
	taskRepo := &mockTaskRepo{
		listOverlappingFunc: func(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
			return nil, dbErr
		},
	}

	svc := NewReportService(taskRepo, 3, "", &mockLogger{})

	_, err := svc.WorkloadReport(context.Background(), scheduleDay(1), scheduleDay(3), 3)
	assert.ErrorIs(t, err, dbErr)
}

func TestReportService_ArchivesCopy(t *testing.T) {
	taskRepo := &mockTaskRepo{
		listOverlappingFunc: func(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
			return nil, nil
		},
	}
	dir := t.TempDir()

	svc := NewReportService(taskRepo, 3, dir, &mockLogger{})

	f, err := svc.WorkloadReport(context.Background(), scheduleDay(1), scheduleDay(3), 3)
	require.NoError(t, err)
	defer f.Close()

	_, err = os.Stat(filepath.Join(dir, "workload_2025-03-01_2025-03-03.xlsx"))
	assert.NoError(t, err, "archived copy should exist")
}
