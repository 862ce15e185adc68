package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

func (h *handlers) createOrder(c *gin.Context) {
	var req struct {
		UserID          int64               `json:"userId"`
		Items           []ordersvc.LineInput `json:"items"`
		ShippingAddress string              `json:"shippingAddress"`
		PaymentMethod   string              `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID != 0 && !actingUserOK(c, req.UserID) {
		return
	}

	order, err := h.orders.Create(c.Request.Context(), currentUser(c).ID, ordersvc.CreateInput{
		Lines:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"orderId":     order.ID,
		"totalAmount": order.TotalAmount.StringFixed(2),
	})
}

func (h *handlers) listUserOrders(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok || !actingUserOK(c, userID) {
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondList(c, orders, len(orders))
}

func (h *handlers) getOrder(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !actingUserOK(c, order.UserID) {
		return
	}
	respondData(c, http.StatusOK, order)
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "order status updated")
}
