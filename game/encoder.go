package game

// Encoder serializes level state for transport.
type Encoder interface {
	MarshalState(State) ([]byte, error)
	UnmarshalState([]byte) (State, error)
}
