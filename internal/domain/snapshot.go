package domain

// Snapshot is what the tracker publishes on every position tick.
type Snapshot struct {
	State     ResolvedState `json:"state"`
	Delivered int64         `json:"delivered"`
}

// ArrivalMessage announces a change of current location. It returns "" when
// the change is not worth announcing, such as a table reload before the run.
func ArrivalMessage(state ResolvedState) string {
	switch state.Phase {
	case PhaseActive:
		return "ARRIVED: " + state.Current.Name
	case PhaseInTransit:
		return "DEPARTED: " + state.Current.Name
	case PhaseComplete:
		return "RUN COMPLETE: RETURNING TO " + HomeBase.Name
	default:
		return ""
	}
}
