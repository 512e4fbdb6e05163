package plisio

// OrderState is the internal payment outcome derived from a provider status.
type OrderState int

const (
	StateUnknown OrderState = iota
	StatePaid
	StatePending
	StateCancelled
	StateExpired
)

func (s OrderState) String() string {
	switch s {
	case StatePaid:
		return "paid"
	case StatePending:
		return "pending"
	case StateCancelled:
		return "cancelled"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// MapStatus translates a provider-reported status into an internal order
// state plus the fixed comment recorded with the transition. A "mismatch"
// (paid with a deviating amount) counts as paid; anything outside the known
// set maps to StateUnknown with no comment.
func MapStatus(status string) (OrderState, string) {
	switch status {
	case "completed", "mismatch":
		return StatePaid, "Payment complete"
	case "cancelled":
		return StateCancelled, "Payment cancelled"
	case "expired":
		return StateExpired, "Payment expired"
	case "new", "pending":
		return StatePending, "Payment pending"
	default:
		return StateUnknown, ""
	}
}
