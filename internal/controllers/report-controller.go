package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type ReportController struct {
	service services.ReportServiceInterface
}

func NewReportController(service services.ReportServiceInterface) *ReportController {
	return &ReportController{service: service}
}

func parseReportFilter(c echo.Context) (repositories.ReportFilter, error) {
	var filter repositories.ReportFilter

	if from := c.QueryParam("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, apperrors.NewHttpError(http.StatusBadRequest, "invalid date_from, expected YYYY-MM-DD", err, nil)
		}
		filter.DateFrom = &t
	}
	if to := c.QueryParam("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, apperrors.NewHttpError(http.StatusBadRequest, "invalid date_to, expected YYYY-MM-DD", err, nil)
		}
		// Include the whole last day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}
	if statuses := c.QueryParam("statuses"); statuses != "" {
		filter.Statuses = strings.Split(statuses, ",")
	}
	return filter, nil
}

func (ctrl *ReportController) List(c echo.Context) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	items, err := ctrl.service.GetInterventionReport(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, items)
}

// Export streams the filtered report as an xlsx download.
func (ctrl *ReportController) Export(c echo.Context) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	file, err := ctrl.service.ExportInterventionReport(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	filename := fmt.Sprintf("interventions_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	return file.Write(c.Response().Writer)
}
