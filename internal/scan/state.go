package scan

import "fmt"

// State is the position of a scan session in its workflow.
type State string

const (
	StateIdle         State = "IDLE"
	StateActionSelect State = "ACTION_SELECT"
	StateChecklist    State = "CHECKLIST"
	StateTruckSelect  State = "TRUCK_SELECT"
	StatePhotoProof   State = "PHOTO_PROOF"
	StateSignature    State = "SIGNATURE"
	StateSuccess      State = "SUCCESS"
	StateError        State = "ERROR"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// Terminal reports whether the session has reached an outcome. Terminal
// states dwell briefly, then the session resets to IDLE.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateError
}

func errWrongState(op string, got, want State) error {
	return fmt.Errorf("%s: session is %s, requires %s", op, got, want)
}
