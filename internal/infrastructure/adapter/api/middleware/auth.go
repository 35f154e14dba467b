package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	domainerr "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/usecase"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier checks HS256 bearer tokens issued by the auth provider
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier. An empty issuer accepts any issuer.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// ProfileID validates token and returns its subject as a profile id
func (v *TokenVerifier) ProfileID(token string) (int64, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return 0, err
	}
	if !parsed.Valid {
		return 0, jwt.ErrTokenSignatureInvalid
	}

	profileID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || profileID <= 0 {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return profileID, nil
}

// Auth resolves the bearer token to an active member. Unknown or removed
// members are rejected with 401.
func Auth(verifier *TokenVerifier, members usecase.MemberUseCase, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "Authorization header must be Bearer {token}")
			return
		}

		profileID, err := verifier.ProfileID(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			logger.Warn("Rejected bearer token", map[string]any{
				"path":       c.Request.URL.Path,
				"error":      err.Error(),
				"request_id": coreport.RequestID(c.Request.Context()),
			})
			abortUnauthorized(c, msg)
			return
		}

		member, err := members.GetActiveMember(c.Request.Context(), profileID)
		if err != nil {
			if domainerr.IsNotFoundError(err) {
				abortUnauthorized(c, "Member not found or inactive")
				return
			}
			logger.Error("Failed to resolve member", map[string]any{
				"profile_id": profileID,
				"error":      err.Error(),
			})
			c.AbortWithStatusJSON(domainerr.HTTPStatus(err), dto.Fail(domainerr.ErrorCode(err), "Could not resolve member"))
			return
		}

		SetMember(c, member)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(domainerr.ErrorCode(domainerr.ErrUnauthorized), message))
}
