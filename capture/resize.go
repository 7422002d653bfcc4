package capture

import "github.com/kinetiklab/silhouette/imaging"

// resized wraps a source and rescales its frames to a fixed canvas size.
type resized struct {
	src  Source
	w, h int
}

// Resized returns a source whose frames are rescaled to w by h. Sources that
// already produce the target size are returned unwrapped.
func Resized(src Source, w, h int) Source {
	return &resized{src: src, w: w, h: h}
}

func (r *resized) Next() (*imaging.Frame, error) {
	f, err := r.src.Next()
	if err != nil {
		return nil, err
	}
	if f.W == r.w && f.H == r.h {
		return f, nil
	}
	return f.Resized(r.w, r.h), nil
}

func (r *resized) Close() error { return r.src.Close() }
