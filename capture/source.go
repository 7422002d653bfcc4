// Package capture provides the video sources the engine consumes: webcam
// and file capture through OpenCV (behind the gocv build tag) and an
// always-available synthetic source for headless runs, demos and tests.
package capture

import (
	"errors"

	"github.com/kinetiklab/silhouette/imaging"
)

// ErrEndOfStream is returned by Next when a source is exhausted. It is
// fatal for that source only; recovery policy belongs to the caller.
var ErrEndOfStream = errors.New("capture: end of stream")

// Source yields one frame per cycle. Frames are snapshots owned by the
// caller; the source never mutates a frame after returning it.
type Source interface {
	Next() (*imaging.Frame, error)
	Close() error
}
