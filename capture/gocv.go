//go:build gocv

package capture

import (
	"fmt"
	"image/color"
	"os"

	"gocv.io/x/gocv"

	"github.com/kinetiklab/silhouette/imaging"
)

// Video captures frames from a webcam device or a video file via OpenCV.
type Video struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
}

// OpenDevice opens a capture device by index. Width and height are applied
// only for non-default devices, matching the installation's camera rigs.
func OpenDevice(device, width, height int) (*Video, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("capture: opening device %d: %w", device, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("capture: device %d did not open", device)
	}
	if device != 0 {
		cap.Set(gocv.VideoCaptureFrameWidth, float64(width))
		cap.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	return &Video{cap: cap, mat: gocv.NewMat()}, nil
}

// OpenFile opens a video file.
func OpenFile(path string) (*Video, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("capture: video file: %w", err)
	}
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("capture: opening %s: %w", path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("capture: file %s did not open", path)
	}
	return &Video{cap: cap, mat: gocv.NewMat()}, nil
}

// Next reads one frame, converting OpenCV's BGR mat into an RGBA frame
// snapshot owned by the caller.
func (v *Video) Next() (*imaging.Frame, error) {
	if ok := v.cap.Read(&v.mat); !ok || v.mat.Empty() {
		return nil, ErrEndOfStream
	}

	w, h := v.mat.Cols(), v.mat.Rows()
	f := &imaging.Frame{W: w, H: h, Pix: make([]color.RGBA, w*h)}
	data := v.mat.ToBytes()
	channels := v.mat.Channels()
	for i := 0; i < w*h; i++ {
		o := i * channels
		f.Pix[i] = color.RGBA{R: data[o+2], G: data[o+1], B: data[o], A: 255}
	}
	return f, nil
}

// Close releases the capture device and its scratch mat.
func (v *Video) Close() error {
	v.mat.Close()
	return v.cap.Close()
}
