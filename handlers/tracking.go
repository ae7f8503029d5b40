package handlers

import (
	"context"
	"time"

	"food-ordering-api/apperrors"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/orders"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait        = 10 * time.Second
	// Clients only send control frames on a tracking socket.
	maxClientMessage = 512
)

// TrackMessage is pushed to tracking clients on every tick.
type TrackMessage struct {
	OrderID           int64              `json:"orderId"`
	Status            models.OrderStatus `json:"status"`
	EstimatedDelivery time.Time          `json:"estimatedDelivery"`
	Error             string             `json:"error,omitempty"`
}

// TrackOrder upgrades to a websocket and pushes the derived status of one
// order every tick until it is delivered or the client goes away.
func (h *Handler) TrackOrder(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := orders.ParseOrderID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	// Resolve before upgrading so a missing order is a plain 404.
	order, err := h.orders.Lookup(c.Request.Context(), user, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.With(zap.Int64("order_id", id), zap.String("user_id", user.ID))
	log.Debug("tracking started")

	conn.SetReadLimit(maxClientMessage)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.trackInterval)
	defer ticker.Stop()

	for {
		if err := send(conn, TrackMessage{
			OrderID:           order.ID,
			Status:            order.Status,
			EstimatedDelivery: order.EstimatedDelivery,
		}); err != nil {
			log.Debug("tracking client gone", zap.Error(err))
			return
		}
		if order.Status == models.StatusDelivered {
			closeConn(conn, websocket.CloseNormalClosure, string(models.StatusDelivered))
			log.Debug("tracking finished")
			return
		}

		select {
		case <-closed:
			log.Debug("tracking client disconnected")
			return
		case <-ticker.C:
		}

		order, err = h.lookupWithTimeout(c.Request.Context(), user, id)
		if err != nil {
			msg := internalErrorMessage
			if apperrors.HTTPStatus(err) < 500 {
				msg = err.Error()
			} else {
				log.Error("tracking lookup failed", zap.Error(err))
			}
			_ = send(conn, TrackMessage{OrderID: id, Error: msg})
			closeConn(conn, websocket.CloseInternalServerErr, msg)
			return
		}
	}
}

func (h *Handler) lookupWithTimeout(ctx context.Context, user *models.User, id int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, h.trackInterval)
	defer cancel()
	return h.orders.Lookup(ctx, user, id)
}

func send(conn *websocket.Conn, msg TrackMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func closeConn(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(writeWait))
}
