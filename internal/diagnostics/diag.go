package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes published by the badge.
const (
	ModeChanged      = "MODE.CHANGED"
	TextUpdated      = "TEXT.UPDATED"
	TextTruncated    = "TEXT.TRUNCATED"
	StoreWriteFailed = "STORE.WRITE_FAILED"
	SensorFailed     = "SENSOR.READ_FAILED"
	DrawFailed       = "DRIVER.DRAW_FAILED"
	TestRunning      = "TEST.RUNNING"
	TestDone         = "TEST.DONE"
	TestUnknown      = "TEST.UNKNOWN"
	ControlBadMode   = "CONTROL.BAD_MODE"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Sink receives diagnostics.
type Sink interface {
	Push(d Diagnostic)
}

// Discard drops everything.
type Discard struct{}

func (Discard) Push(Diagnostic) {}
