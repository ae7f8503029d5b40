package statemachine

import (
	"time"

	"food-ordering-api/models"
)

// Transition moves an order From one display status To the next once the
// order is older than After.
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	After time.Duration      `json:"-"`
}

// progression is applied in order, so thresholds are cumulative: an order
// past every threshold walks the whole chain in one evaluation.
var progression = []Transition{
	{From: models.StatusConfirmed, To: models.StatusPreparing, After: 25 * time.Minute},
	{From: models.StatusPreparing, To: models.StatusOnTheWay, After: 30 * time.Minute},
	{From: models.StatusOnTheWay, To: models.StatusDelivered, After: 35 * time.Minute},
}

var rank = func() map[models.OrderStatus]int {
	m := map[models.OrderStatus]int{models.StatusConfirmed: 0}
	for i, t := range progression {
		m[t.To] = i + 1
	}
	return m
}()

// DeriveStatus projects the stored status forward by the elapsed time since
// creation. It has no side effects and unknown statuses pass through.
func DeriveStatus(stored models.OrderStatus, elapsed time.Duration) models.OrderStatus {
	status := stored
	for _, t := range progression {
		if status == t.From && elapsed > t.After {
			status = t.To
		}
	}
	return status
}

// Rank is the position of status in the progression, or -1 if unknown.
func Rank(status models.OrderStatus) int {
	if r, ok := rank[status]; ok {
		return r
	}
	return -1
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status models.OrderStatus) bool {
	return Rank(status) >= 0 && len(ValidTransitionsFrom(status)) == 0
}

// ValidTransitionsFrom returns the next states reachable from status
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range progression {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// GetAllTransitions returns the progression for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(progression))
	copy(out, progression)
	return out
}
