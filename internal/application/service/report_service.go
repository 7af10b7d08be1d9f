package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/schedule"
)

const (
	workloadSheet  = "Workload"
	conflictsSheet = "Conflicts"
)

// ReportService exports workload data as spreadsheet reports
type ReportService interface {
	// WorkloadReport builds an Excel workbook with per-PIC daily task counts
	// and the conflict warnings for the range. The caller owns closing the
	// returned file.
	WorkloadReport(ctx context.Context, from, to time.Time, threshold int) (*excelize.File, error)
}

type reportServiceImpl struct {
	taskRepo         port.TaskRepository
	defaultThreshold int
	outputDir        string
	logger           Logger
}

// NewReportService creates a new ReportService. When outputDir is non-empty,
// every generated workbook is also archived there.
func NewReportService(taskRepo port.TaskRepository, defaultThreshold int, outputDir string, logger Logger) ReportService {
	if defaultThreshold <= 0 {
		defaultThreshold = schedule.DefaultThreshold
	}
	return &reportServiceImpl{
		taskRepo:         taskRepo,
		defaultThreshold: defaultThreshold,
		outputDir:        outputDir,
		logger:           logger,
	}
}

// WorkloadReport builds the workbook from a fresh task snapshot
func (s *reportServiceImpl) WorkloadReport(ctx context.Context, from, to time.Time, threshold int) (*excelize.File, error) {
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}

	tasks, err := s.taskRepo.ListOverlapping(ctx, from, to)
	if err != nil {
		s.logger.Error("Failed to load tasks for report", "error", err)
		return nil, fmt.Errorf("load overlapping tasks: %w", err)
	}

	dateRange := schedule.DateRange{From: from, To: to}
	loads := schedule.DailyLoad(tasks, dateRange)
	warnings := schedule.DetectConflicts(tasks, dateRange, threshold)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), workloadSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := s.fillWorkloadSheet(f, loads); err != nil {
		f.Close()
		return nil, err
	}
	if err := s.fillConflictsSheet(f, warnings); err != nil {
		f.Close()
		return nil, err
	}

	if s.outputDir != "" {
		name := fmt.Sprintf("workload_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
		path := filepath.Join(s.outputDir, name)
		if err := f.SaveAs(path); err != nil {
			// Archival is best effort; the caller still gets the workbook.
			s.logger.Error("Failed to archive workload report", "error", err, "path", path)
		}
	}

	s.logger.Info("Workload report generated",
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"load_rows", len(loads),
		"warning_rows", len(warnings),
	)
	return f, nil
}

func (s *reportServiceImpl) fillWorkloadSheet(f *excelize.File, loads []schedule.DayLoad) error {
	headers := []string{"Date", "PIC", "Tasks"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(workloadSheet, cell, h); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for row, load := range loads {
		values := []interface{}{load.Date.Format("2006-01-02"), load.PicName, load.TaskCount}
		if err := setRow(f, workloadSheet, row+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (s *reportServiceImpl) fillConflictsSheet(f *excelize.File, warnings []schedule.ConflictWarning) error {
	if _, err := f.NewSheet(conflictsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headers := []string{"Date", "PIC", "Tasks", "Warning"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(conflictsSheet, cell, h); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for row, w := range warnings {
		values := []interface{}{w.Date.Format("2006-01-02"), w.PicName, w.TaskCount, w.Message}
		if err := setRow(f, conflictsSheet, row+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
