package lifecycle

import "testing"

func TestValidCoversAllStatuses(t *testing.T) {
  for _, s := range AllStatuses {
    if !Valid(s) {
      t.Errorf("Valid(%q) = false, want true", s)
    }
  }
  if Valid(Status("at_loading")) {
    t.Error("legacy open-string status 'at_loading' must not validate")
  }
  if Valid(Status("")) {
    t.Error("empty status must not validate")
  }
}

func TestLegalTransitions(t *testing.T) {
  legal := []struct{ from, to Status }{
    {StatusPendingApproval, StatusScheduled},
    {StatusPendingApproval, StatusRejected},
    {StatusScheduled, StatusVerified},
    {StatusScheduled, StatusRejected},
    {StatusVerified, StatusAtParking},
    {StatusVerified, StatusAtWeighbridge},
    {StatusAtParking, StatusAtWeighbridge},
    {StatusAtParking, StatusAtDock},
    {StatusAtWeighbridge, StatusAtParking},
    {StatusAtWeighbridge, StatusAtDock},
    {StatusAtWeighbridge, StatusExitReady},
    {StatusAtDock, StatusLoading},
    {StatusAtDock, StatusUnloading},
    {StatusLoading, StatusAtWeighbridge},
    {StatusLoading, StatusExitReady},
    {StatusUnloading, StatusAtWeighbridge},
    {StatusUnloading, StatusExitReady},
    {StatusExitReady, StatusExited},
  }
  for _, c := range legal {
    if err := Validate(c.from, c.to); err != nil {
      t.Errorf("Validate(%q, %q) = %v, want nil", c.from, c.to, err)
    }
  }
}

func TestIllegalTransitions(t *testing.T) {
  illegal := []struct{ from, to Status }{
    {StatusScheduled, StatusAtDock},       // skipping gate verification
    {StatusScheduled, StatusExited},       // skipping the whole yard
    {StatusVerified, StatusLoading},       // skipping dock assignment
    {StatusAtParking, StatusExitReady},    // skipping weigh-out
    {StatusExited, StatusScheduled},       // no resurrection
    {StatusRejected, StatusVerified},      // rejected trucks stay out
    {StatusAtDock, StatusAtDock},          // self loop
  }
  for _, c := range illegal {
    if err := Validate(c.from, c.to); err == nil {
      t.Errorf("Validate(%q, %q) = nil, want error", c.from, c.to)
    }
  }
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
  for _, term := range []Status{StatusRejected, StatusExited} {
    if !Terminal(term) {
      t.Errorf("Terminal(%q) = false, want true", term)
    }
    for _, to := range AllStatuses {
      if CanTransition(term, to) {
        t.Errorf("terminal status %q has outgoing edge to %q", term, to)
      }
    }
  }
}

func TestLocationForIsTotal(t *testing.T) {
  for _, s := range AllStatuses {
    if loc := LocationFor(s); loc == "unknown" || loc == "" {
      t.Errorf("LocationFor(%q) = %q, want a yard location", s, loc)
    }
  }
  if LocationFor(Status("bogus")) != "unknown" {
    t.Error("LocationFor out of range should report 'unknown'")
  }
}

func TestOpen(t *testing.T) {
  if Open(StatusExited) || Open(StatusRejected) {
    t.Error("terminal statuses are not open")
  }
  if !Open(StatusAtWeighbridge) {
    t.Error("at_weighbridge is an open status")
  }
  if Open(Status("bogus")) {
    t.Error("unknown statuses are not open")
  }
}

func TestEveryStatusReachableFromPendingApproval(t *testing.T) {
  seen := map[Status]bool{StatusPendingApproval: true}
  queue := []Status{StatusPendingApproval}
  for len(queue) > 0 {
    cur := queue[0]
    queue = queue[1:]
    for _, next := range AllStatuses {
      if !seen[next] && CanTransition(cur, next) {
        seen[next] = true
        queue = append(queue, next)
      }
    }
  }
  for _, s := range AllStatuses {
    if !seen[s] {
      t.Errorf("status %q unreachable from pending_approval", s)
    }
  }
}
