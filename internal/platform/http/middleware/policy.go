package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/platform/http/response"
)

// Rule lists the roles allowed on one route. An Any rule admits every
// authenticated caller.
type Rule struct {
	Any   bool
	Roles []entity.Role
}

// Allow admits only the given roles.
func Allow(roles ...entity.Role) Rule { return Rule{Roles: roles} }

// AnyRole admits every authenticated caller.
func AnyRole() Rule { return Rule{Any: true} }

func (r Rule) permits(role entity.Role) bool {
	return r.Any || slices.Contains(r.Roles, role)
}

// Policy maps "METHOD /route/pattern" to the rule guarding it.
type Policy map[string]Rule

// Key builds the Policy key for a method and gin route pattern.
func Key(method, path string) string {
	return method + " " + path
}

// Authorize checks the caller's role against policy. It must run after
// RequireSession. Routes without an entry are denied.
func Authorize(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		rule, found := policy[Key(c.Request.Method, c.FullPath())]
		if !found || !rule.permits(session.Role) {
			response.Error(c, http.StatusForbidden, "Access denied")
			return
		}
		c.Next()
	}
}
