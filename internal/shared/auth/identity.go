package auth

import (
	"github.com/gin-gonic/gin"
)

// Role vocabulary. Open set with OR-semantics on checks;
// these two are the minimum the service knows about.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const identityKey = "identity"

// Identity is the resolved caller extracted from a validated token.
// It is threaded explicitly into every operation that needs it;
// nothing in the service reads ambient authentication state.
type Identity struct {
	UserID   int64    `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasAnyRole reports whether the identity's role set intersects required.
// An empty required list means any authenticated identity passes.
func (i Identity) HasAnyRole(required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IntoContext stores the identity on the request context
func IntoContext(c *gin.Context, identity Identity) {
	c.Set(identityKey, identity)
}

// FromContext returns the identity set by the auth middleware
func FromContext(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
