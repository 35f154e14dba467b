package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/claimsy/karma/internal/domain/entity"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	dto.RegisterJSONFieldNames()
}

// newTestRouter returns a router that authenticates every request as member
func newTestRouter(member *entity.Account) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if member != nil {
			middleware.SetMember(c, member)
		}
		c.Next()
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Code       int             `json:"code"`
	Errors     []string        `json:"errors"`
	Pagination json.RawMessage `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

var employee = &entity.Account{ID: 10, WorkspaceID: 1, Role: entity.RoleEmployee, Active: true}
