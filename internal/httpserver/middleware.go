package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

// sessionCookie is the name of the cookie carrying the opaque session token.
const sessionCookie = "session_token"

const ctxUserKey = "auth_user"

// requireSession resolves the session cookie to an account and stores it on
// the request context. Requests without a valid, unexpired session are
// rejected; handlers behind this middleware never see an anonymous caller.
func (h *handlers) requireSession(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	u, err := h.accounts.LookupSession(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "session expired or invalid")
			return
		}
		h.fail(c, err)
		return
	}

	c.Set(ctxUserKey, u)
	c.Next()
}

// requireAdmin gates administrative routes. Must run behind requireSession.
func (h *handlers) requireAdmin(c *gin.Context) {
	if currentUser(c).Role != domain.RoleAdmin {
		respondError(c, http.StatusForbidden, "admin privileges required")
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) *domain.User {
	u, _ := c.MustGet(ctxUserKey).(*domain.User)
	return u
}

// actingUserOK checks that the user id a client put in the path or body
// matches the authenticated session. The id is a request hint only; admins
// may act on any account.
func actingUserOK(c *gin.Context, claimed int64) bool {
	u := currentUser(c)
	if u.ID == claimed || u.Role == domain.RoleAdmin {
		return true
	}
	respondError(c, http.StatusUnauthorized, "user does not match session")
	return false
}
