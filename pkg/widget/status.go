package widget

import "fmt"

// Status is a state of the ping indicator.
//
// Exactly one Status is active at a time. Zero value is Idle.
type Status uint8

const (
	// Idle is an initial state: nothing has been sent yet.
	Idle Status = iota
	// Loading means ping transaction is being pushed to the chain.
	Loading
	// Success means the last ping has been accepted by the chain.
	Success
	// Failure means the last ping has been rejected for any reason.
	Failure
)

var statusNames = [...]string{
	Idle:    "idle",
	Loading: "loading",
	Success: "success",
	Failure: "failure",
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}

	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown status %d", uint8(s))
	}

	return []byte(statusNames[s]), nil
}
