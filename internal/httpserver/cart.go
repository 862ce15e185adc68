package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok || !actingUserOK(c, userID) {
		return
	}

	view, err := h.cart.Get(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondData(c, http.StatusOK, view)
}

func (h *handlers) addToCart(c *gin.Context) {
	var req struct {
		UserID    int64  `json:"userId"`
		ProductID int64  `json:"productId"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// The body userId is a hint; the session decides who is acting.
	if req.UserID != 0 && !actingUserOK(c, req.UserID) {
		return
	}

	line, err := h.cart.Add(c.Request.Context(), currentUser(c).ID, req.ProductID, req.Quantity, req.Size)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, line)
}

func (h *handlers) updateCartLine(c *gin.Context) {
	lineID, ok := pathID(c, "cartId")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cart.UpdateQuantity(c.Request.Context(), currentUser(c).ID, lineID, req.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "quantity updated")
}

func (h *handlers) removeCartLine(c *gin.Context) {
	lineID, ok := pathID(c, "cartId")
	if !ok {
		return
	}

	if err := h.cart.Remove(c.Request.Context(), currentUser(c).ID, lineID); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "item removed from cart")
}

func (h *handlers) clearCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok || !actingUserOK(c, userID) {
		return
	}

	if err := h.cart.Clear(c.Request.Context(), userID); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "cart cleared")
}
