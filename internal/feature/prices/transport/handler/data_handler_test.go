package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"dataset_analytics/internal/feature/prices/domain/entity"
	"dataset_analytics/internal/feature/prices/transport/handler"
)

func testDataset() *entity.Dataset {
	day := time.Date(2017, 11, 8, 0, 0, 0, 0, time.UTC)
	records := []entity.PriceRecord{
		{Date: day, Open: 101.5, High: 102, Low: 100.25, Close: 101.75, Volume: 1000},
		{Date: day.AddDate(0, 0, 1), Open: 101.75, High: 103, Low: 101, Close: 102.5, Volume: 2000},
		{Date: day.AddDate(0, 0, 2), Open: 102.5, High: 104, Low: 102, Close: 103.25, Volume: 3000},
	}
	return &entity.Dataset{Symbol: "DIS", Source: "csv:test", Records: records}
}

func setupRouter(ds *entity.Dataset) *gin.Engine {
	h := handler.NewDataHandler(ds)
	r := gin.New()
	r.SetHTMLTemplate(handler.Templates())
	r.GET("/", h.Index)
	r.GET("/data", h.Data)
	return r
}

func TestDataHandler_Data(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expectedRows   int
		contains       []string
	}{
		{
			name:           "success: full table",
			url:            "/data",
			expectedStatus: http.StatusOK,
			expectedRows:   3,
			contains:       []string{"<table", "2017-11-08", "2017-11-10", "101.75", "showing 3 of 3 rows"},
		},
		{
			name:           "success: rows limits the table",
			url:            "/data?rows=2",
			expectedStatus: http.StatusOK,
			expectedRows:   2,
			contains:       []string{"showing 2 of 3 rows"},
		},
		{
			name:           "success: rows larger than dataset",
			url:            "/data?rows=50",
			expectedStatus: http.StatusOK,
			expectedRows:   3,
		},
		{
			name:           "success: zero rows",
			url:            "/data?rows=0",
			expectedStatus: http.StatusOK,
			expectedRows:   0,
		},
		{
			name:           "error: rows is not an integer",
			url:            "/data?rows=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error: negative rows",
			url:            "/data?rows=-1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(testDataset())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.JSONEq(t, `{"error":"invalid `+"`rows`"+` parameter; must be a non-negative integer"}`, w.Body.String())
				return
			}
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			body := w.Body.String()
			// One header row plus one row per record.
			assert.Equal(t, tt.expectedRows+1, strings.Count(body, "<tr>"))
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestDataHandler_Data_PlainDecimalNumbers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ds := &entity.Dataset{Symbol: "BRK", Source: "csv:test", Records: []entity.PriceRecord{
		{Date: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1000000, High: 1234567.5, Low: 0.000012, Close: 1000000, Volume: 25000000},
	}}
	router := setupRouter(ds)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, s := range []string{"<td>1000000</td>", "<td>1234567.5</td>", "<td>0.000012</td>", "<td>25000000</td>"} {
		assert.Contains(t, body, s)
	}
	assert.NotContains(t, body, "e+")
}

func TestDataHandler_Index(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := setupRouter(testDataset())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, link := range []string{"/data", "/dividends", "/ma180", "/vol180"} {
		assert.Contains(t, body, `href="`+link)
	}
}
