//go:build !gocv

package capture

import (
	"fmt"

	"github.com/kinetiklab/silhouette/imaging"
)

// Video is unavailable without the gocv build tag; constructors fail with a
// clear error so the synthetic source remains the only option.
type Video struct{}

// OpenDevice reports that camera capture requires the gocv build tag.
func OpenDevice(device, width, height int) (*Video, error) {
	return nil, fmt.Errorf("capture: device %d: built without gocv support (build with -tags gocv)", device)
}

// OpenFile reports that file capture requires the gocv build tag.
func OpenFile(path string) (*Video, error) {
	return nil, fmt.Errorf("capture: %s: built without gocv support (build with -tags gocv)", path)
}

// Next never runs; it exists so Video satisfies Source in both builds.
func (v *Video) Next() (*imaging.Frame, error) { return nil, ErrEndOfStream }

// Close is a no-op.
func (v *Video) Close() error { return nil }
