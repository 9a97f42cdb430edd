package order

// forward is the single legal forward chain; cancellation branches off
// from any non-terminal state.
var forward = map[Status]Status{
	StatusPlaced:         StatusProcessing,
	StatusProcessing:     StatusShipped,
	StatusShipped:        StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether from -> to is legal: one step forward,
// or a branch to cancelled from any non-terminal state.
func CanTransition(from, to Status) bool {
	if IsTerminal(from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return forward[from] == to
}
