package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	coreport "github.com/claimsy/karma/internal/domain/port/core"
	mockcore "github.com/claimsy/karma/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLogger_RequestID(t *testing.T) {
	testCases := []struct {
		name     string
		incoming string
		status   int
		level    string
	}{
		{name: "echoes caller id", incoming: "req-123", status: http.StatusOK, level: "Info"},
		{name: "generates id", status: http.StatusBadRequest, level: "Warn"},
		{name: "server error", incoming: "req-500", status: http.StatusInternalServerError, level: "Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger := mockcore.NewMockLogger(t)
			logger.On(tc.level, "Request processed", mock.MatchedBy(func(fields map[string]any) bool {
				return fields["status"] == tc.status && fields["request_id"] != ""
			})).Once()

			var seen string
			router := gin.New()
			router.Use(Logger(logger))
			router.GET("/ping", func(c *gin.Context) {
				seen = coreport.RequestID(c.Request.Context())
				c.Status(tc.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tc.incoming != "" {
				assert.Equal(t, tc.incoming, seen)
			}
		})
	}
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	logger := mockcore.NewMockLogger(t)
	logger.On("Error", "Panic recovered in API request", mock.Anything).Once()

	router := gin.New()
	router.Use(ErrorHandler(logger))
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"code":5000,"message":"Internal server error"}`, rec.Body.String())
}
