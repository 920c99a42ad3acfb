package lifecycle

import (
  "fmt"
)

// Status is the closed set of truck lifecycle states. Every status write in
// the system goes through Validate, so there is exactly one definition of the
// legal transition graph.
type Status string

const (
  StatusPendingApproval Status = "pending_approval"
  StatusScheduled       Status = "scheduled"
  StatusRejected        Status = "rejected"
  StatusVerified        Status = "verified"
  StatusAtParking       Status = "at_parking"
  StatusAtWeighbridge   Status = "at_weighbridge"
  StatusAtDock          Status = "at_dock"
  StatusLoading         Status = "loading"
  StatusUnloading       Status = "unloading"
  StatusExitReady       Status = "exit_ready"
  StatusExited          Status = "exited"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
  StatusPendingApproval,
  StatusScheduled,
  StatusRejected,
  StatusVerified,
  StatusAtParking,
  StatusAtWeighbridge,
  StatusAtDock,
  StatusLoading,
  StatusUnloading,
  StatusExitReady,
  StatusExited,
}

// transitions is the single allowed-from -> allowed-to table. A truck weighs
// in before docking and may weigh out again afterwards, so at_weighbridge is
// reachable both before and after the dock operation.
var transitions = map[Status][]Status{
  StatusPendingApproval: {StatusScheduled, StatusRejected},
  StatusScheduled:       {StatusVerified, StatusRejected},
  StatusVerified:        {StatusAtParking, StatusAtWeighbridge},
  StatusAtParking:       {StatusAtWeighbridge, StatusAtDock},
  StatusAtWeighbridge:   {StatusAtParking, StatusAtDock, StatusExitReady},
  StatusAtDock:          {StatusLoading, StatusUnloading},
  StatusLoading:         {StatusAtWeighbridge, StatusExitReady},
  StatusUnloading:       {StatusAtWeighbridge, StatusExitReady},
  StatusExitReady:       {StatusExited},
  StatusRejected:        nil,
  StatusExited:          nil,
}

// locations maps each status to the yard location label recorded alongside it.
var locations = map[Status]string{
  StatusPendingApproval: "outside",
  StatusScheduled:       "outside",
  StatusRejected:        "outside",
  StatusVerified:        "gate",
  StatusAtParking:       "parking",
  StatusAtWeighbridge:   "weighbridge",
  StatusAtDock:          "dock",
  StatusLoading:         "dock",
  StatusUnloading:       "dock",
  StatusExitReady:       "exit_gate",
  StatusExited:          "outside",
}

// Valid reports whether s is a member of the closed status set.
func Valid(s Status) bool {
  _, ok := transitions[s]
  return ok
}

// Terminal reports whether s has no outgoing transitions.
func Terminal(s Status) bool {
  targets, ok := transitions[s]
  return ok && len(targets) == 0
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to Status) bool {
  for _, t := range transitions[from] {
    if t == to {
      return true
    }
  }
  return false
}

// Validate returns a descriptive error when from -> to is not a legal edge.
func Validate(from, to Status) error {
  if !Valid(from) {
    return fmt.Errorf("unknown truck status '%s'", from)
  }
  if !Valid(to) {
    return fmt.Errorf("unknown truck status '%s'", to)
  }
  if !CanTransition(from, to) {
    return fmt.Errorf("illegal truck status transition '%s' -> '%s'", from, to)
  }
  return nil
}

// LocationFor returns the yard location label recorded for a status.
func LocationFor(s Status) string {
  if loc, ok := locations[s]; ok {
    return loc
  }
  return "unknown"
}

// Open reports whether a mirrored record (weighbridge entry, plant tracking
// record) carrying this status still tracks a truck inside the yard. Mirrors
// in a terminal status are closed and are never updated again.
func Open(s Status) bool {
  return Valid(s) && !Terminal(s)
}
