package capture

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

type failingResizer struct{}

func (failingResizer) Resize(ctx context.Context, ref string) (string, error) {
	return "", errors.New("processing backend down")
}

type failingSource struct{}

func (failingSource) Snap(ctx context.Context) (string, error) {
	return "", errors.New("shutter jammed")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "capture-test"})
}

func TestCaptureResizesAndTagsReference(t *testing.T) {
	cam, err := NewCamera(&StubSource{}, StubResizer{MaxWidthPx: 1024, JPEGQuality: 70}, testLogger())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	ref, err := cam.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !strings.HasSuffix(ref, "#w=1024,q=70") {
		t.Fatalf("expected resize bookkeeping on the reference, got %q", ref)
	}
}

func TestCaptureFallsBackToOriginalOnResizeFailure(t *testing.T) {
	cam, err := NewCamera(&StubSource{}, failingResizer{}, testLogger())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	ref, err := cam.Capture(context.Background())
	if err != nil {
		t.Fatalf("resize failure must be swallowed, got %v", err)
	}
	if ref != "img://capture/0001.jpg" {
		t.Fatalf("expected the uncompressed original, got %q", ref)
	}
}

func TestCaptureSourceFailureSurfaces(t *testing.T) {
	cam, err := NewCamera(failingSource{}, StubResizer{MaxWidthPx: 1024, JPEGQuality: 70}, testLogger())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	if _, err := cam.Capture(context.Background()); err == nil {
		t.Fatal("a failed snap has no fallback and must surface")
	}
}

func TestStubSourceSequences(t *testing.T) {
	src := &StubSource{}
	first, _ := src.Snap(context.Background())
	second, _ := src.Snap(context.Background())
	if first == second {
		t.Fatalf("expected distinct references, got %q twice", first)
	}
}

func TestStubSignaturePadAndLocator(t *testing.T) {
	sig, err := StubSignaturePad{}.Sign(context.Background())
	if err != nil || sig != "signed" {
		t.Fatalf("unexpected signature %q err %v", sig, err)
	}

	loc, err := StubLocator{Location: "3.1390° N, 101.6869° E"}.Locate(context.Background())
	if err != nil || loc != "3.1390° N, 101.6869° E" {
		t.Fatalf("unexpected location %q err %v", loc, err)
	}
}
