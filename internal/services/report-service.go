package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
)

type ReportServiceInterface interface {
	GetInterventionReport(ctx context.Context, filter repositories.ReportFilter) ([]repositories.ReportItem, error)
	ExportInterventionReport(ctx context.Context, filter repositories.ReportFilter) (*excelize.File, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

func (s *ReportService) GetInterventionReport(ctx context.Context, filter repositories.ReportFilter) ([]repositories.ReportItem, error) {
	return s.reportRepo.GetInterventionReport(ctx, filter)
}

var reportHeaders = []string{
	"Reference", "Equipment", "Stop Type", "Problem Type", "Priority",
	"Status", "Description", "Requester", "Technician ID",
	"Repair Duration (h)", "Downtime (h)", "Created At",
}

// ExportInterventionReport renders the filtered report as an xlsx workbook.
func (s *ReportService) ExportInterventionReport(ctx context.Context, filter repositories.ReportFilter) (*excelize.File, error) {
	items, err := s.reportRepo.GetInterventionReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Interventions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, item := range items {
		values := []interface{}{
			lifecycle.Reference(item.InterventionID),
			derefString(item.EquipmentName),
			item.StopType,
			item.ProblemType,
			item.Priority,
			item.Status,
			item.Description,
			derefString(item.RequesterName),
			derefUint64(item.TechnicianID),
			derefFloat64(item.RepairDuration),
			derefFloat64(item.DowntimeHours),
			item.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("intervention report exported", zap.Int("rows", len(items)))
	return f, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefUint64(v *uint64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat64(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
