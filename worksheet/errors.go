package worksheet

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageRecognize Stage = "recognize"
	StageLayout    Stage = "layout"
	StageRender    Stage = "render"
)

var (
	// ErrStale is returned to a recognition that finished after a newer
	// request (upload or text edit) had started; its result was discarded.
	ErrStale = errors.New("识别结果已过期")
	// ErrNotReady is returned when there is no text or layout to work on yet.
	ErrNotReady = errors.New("尚无可用的文字")
	// ErrBusy is returned while recognition or rendering is in progress.
	ErrBusy = errors.New("正在处理中")
)

// StageError tags an error with the stage it came from.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage of the first StageError in err's chain.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
