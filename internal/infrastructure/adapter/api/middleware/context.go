package middleware

import (
	"github.com/claimsy/karma/internal/domain/entity"
	"github.com/gin-gonic/gin"
)

const memberKey = "claimsy.member"

// SetMember stores the authenticated member on the request
func SetMember(c *gin.Context, member *entity.Account) {
	c.Set(memberKey, member)
}

// CurrentMember returns the member resolved by Auth
func CurrentMember(c *gin.Context) (*entity.Account, bool) {
	v, ok := c.Get(memberKey)
	if !ok {
		return nil, false
	}
	member, ok := v.(*entity.Account)
	return member, ok && member != nil
}
