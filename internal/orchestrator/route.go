package orchestrator

import "github.com/nguyentantai21042004/lecture-flow/internal/models"

// Decision is the outcome of the routing predicate.
type Decision string

const (
	Continue Decision = "continue"
	Done     Decision = "done"
)

// Route decides whether another slide remains. It is a pure function of its
// arguments.
func Route(index, total int) Decision {
	if index < total {
		return Continue
	}
	return Done
}

// PositionFor places slide index within a deck of total slides. A
// single-slide deck is treated as First.
func PositionFor(index, total int) models.Position {
	switch {
	case index == 0:
		return models.PositionFirst
	case index >= total-1:
		return models.PositionLast
	default:
		return models.PositionMiddle
	}
}
