package ingestion

import "fmt"

type State string

const (
	StateIdle            State = "idle"
	StateSubjectResolved State = "subject-resolved"
	StateImageSelected   State = "image-selected"
	StateUploading       State = "uploading"
	StateExtracting      State = "extracting"
	StateInserting       State = "inserting"
	StateDone            State = "done"
	StateError           State = "error"
)

// Subject and image may be chosen in either order and re-chosen until submit.
var transitions = map[State][]State{
	StateIdle:            {StateSubjectResolved, StateImageSelected},
	StateSubjectResolved: {StateSubjectResolved, StateImageSelected},
	StateImageSelected:   {StateImageSelected, StateSubjectResolved, StateUploading},
	StateUploading:       {StateExtracting, StateError},
	StateExtracting:      {StateInserting, StateError},
	StateInserting:       {StateDone, StateError},
}

func (s State) Terminal() bool {
	return s == StateDone || s == StateError
}

func canTransition(from, to State) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid pipeline transition %s -> %s", e.From, e.To)
}
