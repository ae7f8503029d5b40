package client

import (
	"context"
	"errors"
	"time"

	"food-ordering-api/models"
)

// DefaultPollInterval matches the server side tracking push cadence.
const DefaultPollInterval = 5 * time.Second

type Update struct {
	Order *models.Order
	Err   error
	At    time.Time
}

// Track fetches one order every interval and hands each result to fn until
// ctx is cancelled. Failed polls are reported and the loop carries on; it
// stops early only when the session is gone. Ticks that fire while a
// request is in flight are dropped.
func (c *Client) Track(ctx context.Context, orderID int64, interval time.Duration, fn func(Update)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case at := <-ticker.C:
			order, err := c.Order(ctx, orderID)
			if ctx.Err() != nil {
				return nil
			}
			fn(Update{Order: order, Err: err, At: at})
			if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrNotLoggedIn) {
				return err
			}
		}
	}
}
