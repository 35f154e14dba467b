package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	domainerr "github.com/claimsy/karma/internal/domain/error"
	mockcore "github.com/claimsy/karma/mocks/port/core"
	mockusecase "github.com/claimsy/karma/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "claimsy",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestTokenVerifier_ProfileID(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, "claimsy")

	expired := validClaims("10")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	otherIssuer := validClaims("10")
	otherIssuer.Issuer = "someone-else"

	testCases := []struct {
		name      string
		token     string
		expected  int64
		expectErr error
	}{
		{name: "valid", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("10")), expected: 10},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired), expectErr: jwt.ErrTokenExpired},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims("10")), expectErr: jwt.ErrTokenSignatureInvalid},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims("10")), expectErr: jwt.ErrTokenSignatureInvalid},
		{name: "wrong issuer", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), otherIssuer), expectErr: jwt.ErrTokenInvalidIssuer},
		{name: "non numeric subject", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("abc")), expectErr: jwt.ErrTokenInvalidClaims},
		{name: "garbage", token: "not-a-jwt", expectErr: jwt.ErrTokenMalformed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := verifier.ProfileID(tc.token)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestAuth(t *testing.T) {
	member := &entity.Account{ID: 10, WorkspaceID: 1, Role: entity.RoleEmployee, Active: true}
	good := "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("10"))

	testCases := []struct {
		name           string
		header         string
		mockSetup      func(m *mockusecase.MockMemberUseCase)
		expectedStatus int
	}{
		{
			name:   "active member",
			header: good,
			mockSetup: func(m *mockusecase.MockMemberUseCase) {
				m.On("GetActiveMember", mock.Anything, int64(10)).Return(member, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			mockSetup:      func(m *mockusecase.MockMemberUseCase) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "basic scheme",
			header:         "Basic dXNlcjpwYXNz",
			mockSetup:      func(m *mockusecase.MockMemberUseCase) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "inactive member",
			header: good,
			mockSetup: func(m *mockusecase.MockMemberUseCase) {
				m.On("GetActiveMember", mock.Anything, int64(10)).Return(nil, domainerr.ErrAccountNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "database down",
			header: good,
			mockSetup: func(m *mockusecase.MockMemberUseCase) {
				m.On("GetActiveMember", mock.Anything, int64(10)).Return(nil, domainerr.ErrDatabaseConnection)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			members := mockusecase.NewMockMemberUseCase(t)
			tc.mockSetup(members)

			router := gin.New()
			router.Use(Auth(NewTokenVerifier(testSecret, ""), members, mockcore.NewMockLogger(t).AllowAll()))
			router.GET("/me", func(c *gin.Context) {
				m, ok := CurrentMember(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"id": m.ID})
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("  bearer abc.def  ")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}
