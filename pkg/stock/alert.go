package stock

import "time"

// State is the availability state derived from the count.
type State string

const (
	OutOfStock State = "out_of_stock"
	InStock    State = "in_stock"
)

// StateOf maps a count to its availability state.
func StateOf(count int) State {
	if count > 0 {
		return InStock
	}
	return OutOfStock
}

// qualifies reports whether moving from prev to next is a restock edge.
func qualifies(prev, next int) bool {
	return prev == 0 && next > 0
}

// Alert is what a subscriber receives. All subscribers in one batch get the
// same alert, including its ID.
type Alert struct {
	ID         string    `json:"id"`
	Resource   string    `json:"resource"`
	Count      int       `json:"count"`
	Previous   int       `json:"previous"`
	Forced     bool      `json:"forced,omitempty"` // re-announcement via NotifySubscribers
	OccurredAt time.Time `json:"occurred_at"`
}
