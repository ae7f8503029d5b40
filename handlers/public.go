package handlers

import (
	"context"
	"net/http"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListRestaurants returns restaurants, optionally filtered by ?search=
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.catalog.ListRestaurants(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service":     h.service,
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.catalog.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service":    h.service,
		"restaurant": restaurant,
	})
}

// GetMenu returns the menu for a specific restaurant
func (h *Handler) GetMenu(c *gin.Context) {
	id, menu, err := h.catalog.GetMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service":      h.service,
		"restaurantId": id,
		"menu":         menu,
	})
}

// GetStateMachineInfo describes how the display status progresses
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{
			"from":         t.From,
			"to":           t.To,
			"afterMinutes": int(t.After / time.Minute),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"service":         h.service,
		"state_machine":   info,
		"initial_state":   models.StatusConfirmed,
		"terminal_states": []models.OrderStatus{models.StatusDelivered},
		"description":     "Order status is derived from the time since the order was placed",
	})
}

// Health reports liveness and whether the store answers a ping
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("health check: store unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": h.service,
			"store":   "down",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": h.service,
		"store":   "up",
	})
}
