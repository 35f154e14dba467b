package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// CronSecretHeader carries the cron secret on routes whose Authorization
// header already holds a member token
const CronSecretHeader = "X-Cron-Secret"

// CronAuthorizer authenticates scheduled invocations, either by a shared
// secret or by a header the platform sets on its own traffic.
type CronAuthorizer struct {
	secret        []byte
	trustedHeader string
}

// NewCronAuthorizer creates an authorizer. With neither a secret nor a trusted
// header configured every call is rejected.
func NewCronAuthorizer(secret, trustedHeader string) *CronAuthorizer {
	return &CronAuthorizer{
		secret:        []byte(secret),
		trustedHeader: strings.TrimSpace(trustedHeader),
	}
}

// Authorized reports whether r comes from the scheduler
func (a *CronAuthorizer) Authorized(r *http.Request) bool {
	if a.trustedHeader != "" && strings.TrimSpace(r.Header.Get(a.trustedHeader)) != "" {
		return true
	}
	if len(a.secret) == 0 {
		return false
	}

	token := r.Header.Get(CronSecretHeader)
	if token == "" {
		var ok bool
		if token, ok = bearerToken(r.Header.Get("Authorization")); !ok {
			return false
		}
	}
	return subtle.ConstantTimeCompare([]byte(token), a.secret) == 1
}

// CronAuth rejects requests that are not from the scheduler
func CronAuth(authorizer *CronAuthorizer, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorizer.Authorized(c.Request) {
			logger.Warn("Rejected cron call", map[string]any{
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			})
			abortUnauthorized(c, "Invalid cron credentials")
			return
		}
		c.Next()
	}
}
