package capture

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

// Source produces raw image references, e.g. a camera-roll URI.
type Source interface {
	Snap(ctx context.Context) (string, error)
}

// Resizer bounds an image for storage. Implementations may resize locally or
// remotely; the workflow only sees the returned reference.
type Resizer interface {
	Resize(ctx context.Context, ref string) (string, error)
}

// Camera captures a photo and runs it through the resizer. A resize failure
// is swallowed: the uncompressed original is used instead, so a flaky
// processing step never blocks proof capture.
type Camera struct {
	source  Source
	resizer Resizer
	log     *logger.Logger
}

func NewCamera(source Source, resizer Resizer, log *logger.Logger) (*Camera, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "image source required")
	}
	if resizer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "resizer required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Camera{source: source, resizer: resizer, log: log}, nil
}

func (c *Camera) Capture(ctx context.Context) (string, error) {
	raw, err := c.source.Snap(ctx)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "camera capture")
	}

	resized, err := c.resizer.Resize(ctx, raw)
	if err != nil {
		c.log.Warn(ctx, "image resize failed, keeping original")
		return raw, nil
	}
	return resized, nil
}

// StubSource fakes the device camera with sequential opaque references.
type StubSource struct {
	mu  sync.Mutex
	seq int
}

func (s *StubSource) Snap(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("img://capture/%04d.jpg", s.seq), nil
}

// StubResizer tags the reference with the target bounds instead of touching
// pixels. Target is ~1024px wide at ~70% quality; a storage-size concern,
// not a correctness one.
type StubResizer struct {
	MaxWidthPx  int
	JPEGQuality int
}

func (r StubResizer) Resize(ctx context.Context, ref string) (string, error) {
	return fmt.Sprintf("%s#w=%d,q=%d", ref, r.MaxWidthPx, r.JPEGQuality), nil
}
