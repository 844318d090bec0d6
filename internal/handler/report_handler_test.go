package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boxoffice/internal/domain"
	"boxoffice/internal/handler"
	"boxoffice/mocks"
)

func TestReportHandler_Classes_Success(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockReport)

	rows := []domain.ClassSummaryRow{
		{ClassName: "POWER HOUR", Capacity: 30, Attendance: 12, Revenue: 540.25},
		{ClassName: "TRAP MOBILITY", Capacity: 24, Attendance: 0, Revenue: 0},
	}

	mockReport.On("ClassSummary", mock.Anything, "dc").Return(rows, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/dc/classes", http.NoBody)
	c.Params = gin.Params{{Key: "city", Value: "dc"}}

	h.Classes(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	data := resp.Data.([]interface{})
	assert.Len(t, data, 2)
	mockReport.AssertExpectations(t)
}

func TestReportHandler_Classes_NoUpload(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockReport)

	mockReport.On("ClassSummary", mock.Anything, "dc").Return(nil, domain.ErrNoUpload)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/dc/classes", http.NoBody)
	c.Params = gin.Params{{Key: "city", Value: "dc"}}

	h.Classes(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandler_Totals_Success(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockReport)

	totals := &domain.TotalsSummary{
		OrderCount:    5,
		LineItemCount: 9,
		Attendance:    14,
		GrossSales:    1250.00,
		TaxCollected:  75.00,
		Revenue:       1325.00,
	}

	mockReport.On("Totals", mock.Anything, "atlanta").Return(totals, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/atlanta/totals", http.NoBody)
	c.Params = gin.Params{{Key: "city", Value: "atlanta"}}

	h.Totals(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(5), data["order_count"])
	mockReport.AssertExpectations(t)
}

func TestReportHandler_Customers_Success(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockReport)

	rows := []domain.CustomerSummaryRow{
		{CustomerName: "Dana Cruz", CustomerEmail: "dana@example.com", Visits: 3, Spend: 180.00},
	}

	mockReport.On("Customers", mock.Anything, "dc").Return(rows, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/dc/customers", http.NoBody)
	c.Params = gin.Params{{Key: "city", Value: "dc"}}

	h.Customers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockReport.AssertExpectations(t)
}

func TestReportHandler_Export_Success(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockReport)

	mockReport.On("ExportCSV", mock.Anything, "dc", mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(2).(io.Writer)
			_, _ = w.Write([]byte("Order ID,Customer Name\n1001,Dana Cruz\n"))
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/dc/export", http.NoBody)
	c.Params = gin.Params{{Key: "city", Value: "dc"}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.Contains(w.Body.String(), "1001,Dana Cruz"))
	mockReport.AssertExpectations(t)
}

func TestReportHandler_Export_Error_NoPartialBody(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockReport)

	mockReport.On("ExportCSV", mock.Anything, "dc", mock.Anything).
		Return(domain.ErrNoUpload)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reports/dc/export", http.NoBody)
	c.Params = gin.Params{{Key: "city", Value: "dc"}}

	h.Export(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.False(t, resp.Success)
}
