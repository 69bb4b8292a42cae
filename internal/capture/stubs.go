package capture

import "context"

// StubSignaturePad treats "signed" as a boolean marker rather than real ink
// capture. A real pad implementation slots in behind the same interface.
type StubSignaturePad struct{}

func (StubSignaturePad) Sign(ctx context.Context) (string, error) {
	return "signed", nil
}

// StubLocator always reports one fixed coordinate; live GPS is out of scope.
type StubLocator struct {
	Location string
}

func (l StubLocator) Locate(ctx context.Context) (string, error) {
	return l.Location, nil
}
