package worksheet

// Status is the state of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusRecognizing
	StatusReady
	StatusRendering
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRecognizing:
		return "recognizing"
	case StatusReady:
		return "ready"
	case StatusRendering:
		return "rendering"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
