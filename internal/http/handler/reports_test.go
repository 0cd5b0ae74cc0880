package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"burialdesk/internal/http/handler/mocks"
	"burialdesk/internal/model"
	"burialdesk/internal/report"
)

func sampleReport(kind report.Kind) *report.Report {
	return &report.Report{
		Kind:       kind,
		Generated:  time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC),
		DateFormat: "DD/MM/YYYY",
		Overview:   model.Overview{TotalRecords: 2, VerifiedRecords: 1, PendingRecords: 1},
		Records: []model.Record{
			{RecordNumber: "BR-2025-00001", FirstName: "Jane", LastName: "Doe", Gender: "Female", Status: model.StatusVerified},
			{RecordNumber: "BR-2025-00002", FirstName: "John", LastName: "Doe", Gender: "Male", Status: model.StatusPending},
		},
	}
}

func TestReportOverview(t *testing.T) {
	reports := new(mocks.MockReporter)
	app := fiber.New()
	app.Get("/api/reports/overview", ReportOverview(reports))

	reports.On("Overview", mock.Anything).Return(&model.Overview{TotalRecords: 7}, nil).Once()
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/overview", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var o model.Overview
	json.NewDecoder(resp.Body).Decode(&o)
	assert.Equal(t, 7, o.TotalRecords)

	reports.On("Overview", mock.Anything).Return(nil, errors.New("timeout")).Once()
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/overview", nil))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	reports.AssertExpectations(t)
}

func TestExportReport(t *testing.T) {
	newApp := func(reports *mocks.MockReporter) *fiber.App {
		settings := new(mocks.MockSettingsService)
		settings.On("Current").Return(model.DefaultSettings())
		app := fiber.New()
		app.Get("/api/reports/export", ExportReport(reports, settings))
		return app
	}

	t.Run("detailed xlsx", func(t *testing.T) {
		reports := new(mocks.MockReporter)
		filter := report.Filter{Range: report.RangeLast30Days, Gender: "Female"}
		reports.On("Build", mock.Anything, report.KindDetailed, filter, "DD/MM/YYYY").
			Return(sampleReport(report.KindDetailed), nil).Once()

		resp, _ := newApp(reports).Test(httptest.NewRequest(http.MethodGet, "/api/reports/export?range=last30days&gender=Female", nil))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, report.ContentType(report.FormatXLSX), resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "detailed-burial-report-2025-06-09.xlsx")

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		f, err := excelize.OpenReader(bytes.NewReader(b))
		require.NoError(t, err)
		defer f.Close()
		assert.Contains(t, f.GetSheetList(), "Records")
		reports.AssertExpectations(t)
	})

	t.Run("summary csv", func(t *testing.T) {
		reports := new(mocks.MockReporter)
		reports.On("Build", mock.Anything, report.KindSummary, report.Filter{Range: report.RangeAll}, "DD/MM/YYYY").
			Return(sampleReport(report.KindSummary), nil).Once()

		resp, _ := newApp(reports).Test(httptest.NewRequest(http.MethodGet, "/api/reports/export?type=summary&format=csv", nil))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "summary-burial-report-2025-06-09.csv")
		rows, err := csv.NewReader(resp.Body).ReadAll()
		require.NoError(t, err)
		assert.Contains(t, rows, []string{"Total Records", "2"})
		reports.AssertExpectations(t)
	})

	t.Run("bad parameters", func(t *testing.T) {
		app := newApp(new(mocks.MockReporter))
		for target, code := range map[string]string{
			"/api/reports/export?type=weekly":   "INVALID_TYPE",
			"/api/reports/export?range=forever": "INVALID_RANGE",
			"/api/reports/export?format=pdf":    "INVALID_FORMAT",
		} {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
			assert.Equal(t, code, decodeError(t, resp).Error.Code, target)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		reports := new(mocks.MockReporter)
		reports.On("Build", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		resp, _ := newApp(reports).Test(httptest.NewRequest(http.MethodGet, "/api/reports/export", nil))

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}
