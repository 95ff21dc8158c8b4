package tracker

import "testing"

func TestNextStatusAdminDownTakesPriorityOverCarrier(t *testing.T) {
	got := nextStatus(ConnectedStatus(), false, true, func() Family { return DualStack })
	if got.Kind != Down || got.Down != AdminDown {
		t.Fatalf("got %v, want down(admin_down)", got)
	}
}

func TestNextStatusDisconnectedWhenNoCarrier(t *testing.T) {
	got := nextStatus(UnknownStatus, true, false, func() Family { return NoFamily })
	if got.Kind != Down || got.Down != Disconnected {
		t.Fatalf("got %v, want down(disconnected)", got)
	}
}

func TestNextStatusConnectedWithoutReachability(t *testing.T) {
	got := nextStatus(UnknownStatus, true, true, func() Family { return NoFamily })
	want := ConnectedStatus()
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextStatusInternetUpDualStack(t *testing.T) {
	got := nextStatus(ConnectedStatus(), true, true, func() Family { return DualStack })
	want := InternetUpStatus(DualStack)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextStatusFallsBackFromInternetUpWhenProbeFails(t *testing.T) {
	prev := InternetUpStatus(V4)
	got := nextStatus(prev, true, true, func() Family { return NoFamily })
	want := ConnectedStatus()
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStatusEqualSuppressesNoOpTransition(t *testing.T) {
	a := InternetUpStatus(DualStack)
	b := InternetUpStatus(DualStack)
	if !a.Equal(b) {
		t.Fatalf("expected equal statuses to compare equal")
	}
}
