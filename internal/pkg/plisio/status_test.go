package plisio

import "testing"

func TestMapStatus(t *testing.T) {
	tests := []struct {
		in          string
		wantState   OrderState
		wantComment string
	}{
		{in: "completed", wantState: StatePaid, wantComment: "Payment complete"},
		{in: "mismatch", wantState: StatePaid, wantComment: "Payment complete"},
		{in: "cancelled", wantState: StateCancelled, wantComment: "Payment cancelled"},
		{in: "expired", wantState: StateExpired, wantComment: "Payment expired"},
		{in: "new", wantState: StatePending, wantComment: "Payment pending"},
		{in: "pending", wantState: StatePending, wantComment: "Payment pending"},
		{in: "something_else", wantState: StateUnknown, wantComment: ""},
		{in: "", wantState: StateUnknown, wantComment: ""},
		{in: "Completed", wantState: StateUnknown, wantComment: ""},
	}

	for _, tt := range tests {
		state, comment := MapStatus(tt.in)
		if state != tt.wantState || comment != tt.wantComment {
			t.Fatalf("MapStatus(%q) = (%v, %q), want (%v, %q)", tt.in, state, comment, tt.wantState, tt.wantComment)
		}
	}
}
