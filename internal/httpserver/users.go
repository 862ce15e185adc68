package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
)

const sessionMaxAge = 24 * 60 * 60 // seconds, matches the server-side TTL

func (h *handlers) register(c *gin.Context) {
	var in accountsvc.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": u.ID, "name": u.Name, "email": u.Email})
}

func (h *handlers) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, sessionMaxAge, "/", "", !h.dev, true)
	respondData(c, http.StatusOK, u)
}

func (h *handlers) logout(c *gin.Context) {
	// Best-effort: the client clears local state either way.
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		if err := h.accounts.Logout(c.Request.Context(), token); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", !h.dev, true)
	respondMessage(c, http.StatusOK, "logged out")
}

func (h *handlers) getProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !actingUserOK(c, id) {
		return
	}

	u, err := h.accounts.Profile(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondData(c, http.StatusOK, u)
}

func (h *handlers) updateProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !actingUserOK(c, id) {
		return
	}

	var p domain.ProfileUpdate
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accounts.UpdateProfile(c.Request.Context(), id, p); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "profile updated")
}

func (h *handlers) changePassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !actingUserOK(c, id) {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "password changed")
}
