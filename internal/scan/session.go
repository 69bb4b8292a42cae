package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hweiming/dispatch-tracker/internal/dispatch"
	"github.com/hweiming/dispatch-tracker/internal/orders"
	"github.com/hweiming/dispatch-tracker/pkg/enums"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

// DefaultTerminalDwell is how long a session sits in SUCCESS or ERROR before
// resetting to IDLE on its own.
const DefaultTerminalDwell = 3 * time.Second

// Session drives one scan interaction from code capture to a terminal
// outcome. It is single-flight: while a capability call is outstanding every
// other call is rejected, and transitions out of order are rejected rather
// than trusted to a disabled button.
//
// Lookup failures never reach the log (no order context exists); a wrong
// truck is logged immediately as a mismatch; everything else defers to the
// single commit at submission.
type Session struct {
	mu sync.Mutex

	orderSource OrderSource
	truckSource TruckSource
	camera      Camera
	pad         SignaturePad
	locator     Locator
	recorder    Recorder
	log         *logger.Logger
	actor       string
	dwell       time.Duration

	id         string
	state      State
	order      *orders.Order
	action     enums.ScanAction
	truckID    string
	checked    map[int]struct{}
	proof      []string
	signature  string
	feedback   string
	busy       bool
	resetTimer *time.Timer
}

// SessionParams wires the engine's collaborators.
type SessionParams struct {
	Orders   OrderSource
	Trucks   TruckSource
	Camera   Camera
	Pad      SignaturePad
	Locator  Locator
	Recorder Recorder
	Logger   *logger.Logger

	// Actor is the operator name stamped onto log entries.
	Actor string

	// TerminalDwell overrides the auto-reset delay; zero means the default.
	TerminalDwell time.Duration
}

func NewSession(params SessionParams) (*Session, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order source required")
	}
	if params.Trucks == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "truck source required")
	}
	if params.Camera == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "camera required")
	}
	if params.Pad == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "signature pad required")
	}
	if params.Locator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "locator required")
	}
	if params.Recorder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recorder required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	if params.Actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	dwell := params.TerminalDwell
	if dwell == 0 {
		dwell = DefaultTerminalDwell
	}
	return &Session{
		orderSource: params.Orders,
		truckSource: params.Trucks,
		camera:      params.Camera,
		pad:         params.Pad,
		locator:     params.Locator,
		recorder:    params.Recorder,
		log:         params.Logger,
		actor:       params.Actor,
		dwell:       dwell,
		id:          uuid.NewString(),
		state:       StateIdle,
		checked:     map[int]struct{}{},
	}, nil
}

// Scan resolves a scanned or hand-typed code. A terminal session is
// implicitly reset first, matching "new scan discards the finished one".
func (s *Session) Scan(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy("scan")
	}
	if s.state.Terminal() {
		s.resetLocked()
	}
	if s.state != StateIdle {
		return errConflict("scan", s.state, StateIdle)
	}

	order, ok := s.orderSource.Get(code)
	if !ok {
		s.feedback = fmt.Sprintf("Order %q not found.", code)
		s.toTerminalLocked(ctx, StateError)
		return nil
	}

	s.order = &order
	s.transitionLocked(ctx, StateActionSelect)
	return nil
}

// SelectAction records PICKUP or LOAD. Both are always legal regardless of
// the order's current status.
func (s *Session) SelectAction(ctx context.Context, action enums.ScanAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy("select action")
	}
	if s.state != StateActionSelect {
		return errConflict("select action", s.state, StateActionSelect)
	}
	if !action.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid scan action %q", action))
	}

	s.action = action
	s.transitionLocked(ctx, StateChecklist)
	return nil
}

// ToggleItem flips the checked mark on one manifest line.
func (s *Session) ToggleItem(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy("toggle item")
	}
	if s.state != StateChecklist {
		return errConflict("toggle item", s.state, StateChecklist)
	}
	if i < 0 || i >= len(s.order.Items) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item index %d out of range", i))
	}

	if _, ok := s.checked[i]; ok {
		delete(s.checked, i)
	} else {
		s.checked[i] = struct{}{}
	}
	return nil
}

// ChecklistComplete advances once every line is checked: to truck selection
// for LOAD, straight to photo proof otherwise.
func (s *Session) ChecklistComplete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy("complete checklist")
	}
	if s.state != StateChecklist {
		return errConflict("complete checklist", s.state, StateChecklist)
	}
	if len(s.checked) != len(s.order.Items) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("checklist incomplete: %d of %d items verified", len(s.checked), len(s.order.Items)))
	}

	if s.action == enums.ScanActionLoad {
		s.transitionLocked(ctx, StateTruckSelect)
	} else {
		s.transitionLocked(ctx, StatePhotoProof)
	}
	return nil
}

// SelectTruck validates the chosen truck against the order's assignment. A
// mismatch terminates the session and is logged right away, since the
// interaction effectively ends there; the order itself is never touched.
func (s *Session) SelectTruck(ctx context.Context, truckID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy("select truck")
	}
	if s.state != StateTruckSelect {
		return errConflict("select truck", s.state, StateTruckSelect)
	}

	s.truckID = truckID
	if truckID != s.order.ExpectedTruckID {
		correct := s.order.ExpectedTruckID
		if truck, ok := s.truckSource.TruckByID(correct); ok {
			correct = truck.Name
		}
		s.feedback = fmt.Sprintf("WRONG TRUCK! Goes to %s", correct)

		if _, err := s.recorder.Commit(ctx, dispatch.Outcome{
			OrderID: s.order.ID,
			ScanOutcome: orders.ScanOutcome{
				Action:    enums.ScanActionLoad,
				IsMatch:   false,
				ScannedBy: s.actor,
				TruckID:   truckID,
			},
		}); err != nil {
			s.log.Error(ctx, "mismatch commit failed", err)
		}

		s.toTerminalLocked(ctx, StateError)
		return nil
	}

	s.transitionLocked(ctx, StatePhotoProof)
	return nil
}

// CapturePhoto runs the camera capability and appends the resulting proof
// reference. The session stays in PHOTO_PROOF while the call is outstanding
// and rejects re-entrant calls.
func (s *Session) CapturePhoto(ctx context.Context) error {
	if err := s.beginCall("capture photo", StatePhotoProof); err != nil {
		return err
	}
	ref, err := s.camera.Capture(ctx)
	s.endCall()

	if err != nil {
		// A failed capture is a dismissible notice, not a workflow state.
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "photo capture failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePhotoProof {
		return errConflict("capture photo", s.state, StatePhotoProof)
	}
	s.proof = append(s.proof, ref)
	return nil
}

// RemovePhoto discards a captured proof image before submission.
func (s *Session) RemovePhoto(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy("remove photo")
	}
	if s.state != StatePhotoProof {
		return errConflict("remove photo", s.state, StatePhotoProof)
	}
	if i < 0 || i >= len(s.proof) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("photo index %d out of range", i))
	}

	s.proof = append(s.proof[:i], s.proof[i+1:]...)
	return nil
}

// PhotosComplete advances to the signature step; at least one captured image
// is required.
func (s *Session) PhotosComplete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy("complete photos")
	}
	if s.state != StatePhotoProof {
		return errConflict("complete photos", s.state, StatePhotoProof)
	}
	if len(s.proof) == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "at least one proof photo required")
	}

	s.transitionLocked(ctx, StateSignature)
	return nil
}

// Sign runs the signature capability and stores the artifact.
func (s *Session) Sign(ctx context.Context) error {
	if err := s.beginCall("sign", StateSignature); err != nil {
		return err
	}
	ref, err := s.pad.Sign(ctx)
	s.endCall()

	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "signature capture failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSignature {
		return errConflict("sign", s.state, StateSignature)
	}
	s.signature = ref
	return nil
}

// Submit is the single commit point of the workflow: one log entry with the
// session's action, truck (LOAD only), proof, signature and location, then
// the order update, then SUCCESS.
func (s *Session) Submit(ctx context.Context) error {
	if err := s.beginCall("submit", StateSignature); err != nil {
		return err
	}

	s.mu.Lock()
	if s.signature == "" {
		s.busy = false
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeStateConflict, "signature required before submit")
	}
	s.mu.Unlock()

	gps, err := s.locator.Locate(ctx)
	if err != nil {
		// Location is best effort; commit without it.
		s.log.Warn(ctx, "locate failed, committing without gps")
		gps = ""
	}
	s.endCall()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSignature {
		return errConflict("submit", s.state, StateSignature)
	}

	outcome := dispatch.Outcome{
		OrderID: s.order.ID,
		ScanOutcome: orders.ScanOutcome{
			Action:      s.action,
			IsMatch:     true,
			ScannedBy:   s.actor,
			GPSLocation: gps,
			ProofImages: append([]string(nil), s.proof...),
			Signature:   s.signature,
		},
	}
	if s.action == enums.ScanActionLoad {
		outcome.TruckID = s.truckID
	}

	if _, err := s.recorder.Commit(ctx, outcome); err != nil {
		s.feedback = "Could not record scan."
		s.toTerminalLocked(ctx, StateError)
		return err
	}

	s.feedback = fmt.Sprintf("%s Complete!", s.action)
	s.toTerminalLocked(ctx, StateSuccess)
	return nil
}

// Reset abandons the current interaction and returns to IDLE, cancelling any
// pending auto-reset so a stale timer cannot clobber the next session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	s.id = uuid.NewString()
	s.state = StateIdle
	s.order = nil
	s.action = ""
	s.truckID = ""
	s.checked = map[int]struct{}{}
	s.proof = nil
	s.signature = ""
	s.feedback = ""
	s.busy = false
}

func (s *Session) transitionLocked(ctx context.Context, next State) {
	ctx = s.log.WithSessionID(ctx, s.id)
	if s.order != nil {
		ctx = s.log.WithOrderID(ctx, s.order.ID)
	}
	ctx = s.log.WithFields(ctx, map[string]any{"from": s.state, "to": next})
	s.state = next
	s.log.Debug(ctx, "session transition")
}

func (s *Session) toTerminalLocked(ctx context.Context, outcome State) {
	s.transitionLocked(ctx, outcome)
	s.log.Info(s.log.WithSessionID(ctx, s.id), fmt.Sprintf("session finished: %s", outcome))
	s.scheduleResetLocked()
}

// scheduleResetLocked arms the dwell timer. The callback verifies it is still
// the current timer before firing, so a manual reset followed by a new
// session is never clobbered by the old timer.
func (s *Session) scheduleResetLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(s.dwell, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.resetTimer != t || !s.state.Terminal() {
			return
		}
		s.resetLocked()
	})
	s.resetTimer = t
}

// beginCall marks the session busy for the duration of a capability call.
func (s *Session) beginCall(op string, want State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return errBusy(op)
	}
	if s.state != want {
		return errConflict(op, s.state, want)
	}
	s.busy = true
	return nil
}

func (s *Session) endCall() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func errBusy(op string) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, op+": a capability call is already in flight")
}

func errConflict(op string, got, want State) error {
	return pkgerrors.Wrap(pkgerrors.CodeStateConflict, errWrongState(op, got, want), "transition rejected")
}
