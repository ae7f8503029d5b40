package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/orders"

	"github.com/gin-gonic/gin"
)

// placeOrderResponse flattens the order next to service and message.
type placeOrderResponse struct {
	Service string `json:"service"`
	*orders.PlacedOrder
}

// PlaceOrder creates a new order for the caller
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req orders.PlaceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	placed, err := h.orders.PlaceOrder(c.Request.Context(), middleware.GetUser(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, placeOrderResponse{Service: h.service, PlacedOrder: placed})
}

// GetMyOrders returns the caller's most recent orders
func (h *Handler) GetMyOrders(c *gin.Context) {
	list, err := h.orders.ListOrders(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service": h.service,
		"orders":  list,
	})
}

// GetOrderDetail returns one of the caller's orders with its current status
func (h *Handler) GetOrderDetail(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), middleware.GetUser(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service": h.service,
		"order":   order,
	})
}
