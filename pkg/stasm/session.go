package stasm

import (
	"context"
	"sync"

	"github.com/mjszczep/stasm-go/pkg/stasm/logging"
)

// Session is the handle for the native library's process-wide state: the
// loaded detectors, the current image and its search cursor. Every Session
// drives the same native state. Session adds no locking; callers must not use
// the library from more than one goroutine at a time.
type Session struct {
	cfg    Config
	eng    engine
	log    logging.Logger
	closed bool
	shared bool
}

// Option customises a Session built by New.
type Option func(*Session)

func withEngine(e engine) Option {
	return func(s *Session) { s.eng = e }
}

// New returns a Session applying cfg to its native calls.
func New(cfg Config, opts ...Option) *Session {
	s := &Session{cfg: cfg, eng: nativeEngine{}, log: cfg.Logger}
	if s.log == nil {
		s.log = logging.New(nil)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	defaultOnce    sync.Once
	defaultSession *Session
)

// Default returns a shared Session built from the zero Config.
func Default() *Session {
	defaultOnce.Do(func() {
		defaultSession = New(Config{})
		defaultSession.shared = true
	})
	return defaultSession
}

// Close marks the Session unusable. Native state is left as is, since other
// Sessions may still rely on it. Closing the shared Default session is a
// no-op.
func (s *Session) Close() error {
	if s.shared {
		return nil
	}
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	return nil
}

func (s *Session) check(op string) error {
	if s.closed {
		return &Error{Op: op, Err: ErrSessionClosed}
	}
	return nil
}

// fail remaps a native error and logs it with the library's message.
func (s *Session) fail(op string, err error) error {
	err = RemapError(op, err)
	if lerr, ok := err.(*LibraryError); ok {
		s.log.Warn(context.Background(), "stasm native call failed", "op", op, "message", lerr.Message)
	}
	return err
}

// Init loads the face detectors from dataDir and sets the native trace flag.
// An empty dataDir falls back to the Session's Config.
func (s *Session) Init(dataDir string, trace bool) error {
	const op = "Init"
	if err := s.check(op); err != nil {
		return err
	}
	if dataDir == "" {
		dataDir = s.cfg.dataDir()
	}
	s.log.Debug(context.Background(), "stasm native call", "op", op, "datadir", dataDir, "trace", trace)
	if err := s.eng.Init(dataDir, trace); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// InitFlags is Init with a dynamically typed trace flag, which goes through
// ParseFlag. A non-boolean value is ErrInvalidArgument and never reaches the
// library.
func (s *Session) InitFlags(dataDir string, trace any) error {
	const op = "Init"
	if err := s.check(op); err != nil {
		return err
	}
	t, err := ParseFlag(trace)
	if err != nil {
		return errorf(op, ErrInvalidArgument, "trace must be set to true or false")
	}
	return s.Init(dataDir, t)
}

// InitDefault calls Init with the Session's configured data directory and
// trace flag.
func (s *Session) InitDefault() error {
	return s.Init("", s.cfg.Trace)
}

// OpenImage loads img into the native library and resets the search cursor.
// Follow it with SearchNext or SearchAll.
func (s *Session) OpenImage(img *Image, opts OpenOptions) error {
	const op = "OpenImage"
	if err := s.check(op); err != nil {
		return err
	}
	if err := img.validate(op); err != nil {
		return err
	}
	return s.openImage(op, img, opts)
}

// OpenImageFlags is OpenImage with a dynamically typed multi-face flag, for
// callers whose options come from untyped configuration. multiFace goes
// through ParseFlag.
func (s *Session) OpenImageFlags(img *Image, debugPath string, multiFace any, minWidth int) error {
	const op = "OpenImage"
	if err := s.check(op); err != nil {
		return err
	}
	if err := img.validate(op); err != nil {
		return err
	}
	multi, err := ParseFlag(multiFace)
	if err != nil {
		return errorf(op, ErrInvalidArgument, "multiface must be set to true or false")
	}
	return s.openImage(op, img, OpenOptions{DebugPath: debugPath, MultiFace: multi, MinWidth: minWidth})
}

func (s *Session) openImage(op string, img *Image, opts OpenOptions) error {
	if opts.MinWidth < 1 || opts.MinWidth > 100 {
		return errorf(op, ErrOutOfRange, "minimum face width must be between 1 and 100, got %d", opts.MinWidth)
	}
	s.log.Debug(context.Background(), "stasm native call", "op", op,
		"width", img.Width, "height", img.Height, "multiface", opts.MultiFace, "minwidth", opts.MinWidth)
	if err := s.eng.OpenImage(img.packed(), img.Width, img.Height, opts.DebugPath, opts.MultiFace, opts.MinWidth); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// SearchNext advances the native search cursor by one face. It returns a
// full landmark set, or an empty set once no further face is found.
func (s *Session) SearchNext() (Landmarks, error) {
	const op = "SearchNext"
	if err := s.check(op); err != nil {
		return nil, err
	}
	buf := make([]float32, 2*NLandmarks)
	found, err := s.eng.SearchAuto(buf)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if !found {
		return Landmarks{}, nil
	}
	return landmarksFromBuffer(buf, NLandmarks), nil
}

// SearchAll calls SearchNext until it returns an empty set and collects the
// faces found. On error the faces found so far are returned with it.
func (s *Session) SearchAll() ([]Landmarks, error) {
	var faces []Landmarks
	for {
		face, err := s.SearchNext()
		if err != nil {
			return faces, err
		}
		if face.Empty() {
			return faces, nil
		}
		faces = append(faces, face)
	}
}

// SearchSingle opens img and searches it for one face in a single native
// call. It does not depend on any image opened earlier.
func (s *Session) SearchSingle(img *Image, opts SingleOptions) (Landmarks, error) {
	const op = "SearchSingle"
	if err := s.check(op); err != nil {
		return nil, err
	}
	if err := img.validate(op); err != nil {
		return nil, err
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = s.cfg.dataDir()
	}
	s.log.Debug(context.Background(), "stasm native call", "op", op,
		"width", img.Width, "height", img.Height, "datadir", dataDir)

	buf := make([]float32, 2*NLandmarks)
	found, err := s.eng.SearchSingle(buf, img.packed(), img.Width, img.Height, opts.DebugPath, dataDir)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if !found {
		return Landmarks{}, nil
	}
	return landmarksFromBuffer(buf, NLandmarks), nil
}

// SearchPinned fits a full shape around caller-supplied points without face
// detection. pinned holds at most NLandmarks points in Stasm order; points
// left at (0, 0) are unpinned, and a shorter set is padded with such points.
func (s *Session) SearchPinned(pinned Landmarks, img *Image, debugPath string) (Landmarks, error) {
	const op = "SearchPinned"
	if err := s.check(op); err != nil {
		return nil, err
	}
	if err := img.validate(op); err != nil {
		return nil, err
	}
	if len(pinned) > NLandmarks {
		return nil, errorf(op, ErrInvalidLandmarksShape, "%d pinned points, at most %d allowed", len(pinned), NLandmarks)
	}
	if err := pinned.validate(op); err != nil {
		return nil, err
	}
	s.log.Debug(context.Background(), "stasm native call", "op", op,
		"width", img.Width, "height", img.Height, "pinned", len(pinned))

	buf := make([]float32, 2*NLandmarks)
	if err := s.eng.SearchPinned(buf, pinned.shapeBuffer(NLandmarks), img.packed(), img.Width, img.Height, debugPath); err != nil {
		return nil, s.fail(op, err)
	}
	return landmarksFromBuffer(buf, NLandmarks), nil
}

// LastError returns the native library's last error message.
func (s *Session) LastError() string {
	return s.eng.LastError()
}

// ForcePointsIntoImage returns a copy of landmarks with every coordinate
// clamped into img's bounds. landmarks is not modified and holds at most
// NLandmarks points.
func (s *Session) ForcePointsIntoImage(landmarks Landmarks, img *Image) (Landmarks, error) {
	const op = "ForcePointsIntoImage"
	if err := s.check(op); err != nil {
		return nil, err
	}
	if len(landmarks) > NLandmarks {
		return nil, errorf(op, ErrInvalidLandmarksShape, "%d points, at most %d allowed", len(landmarks), NLandmarks)
	}
	if err := landmarks.validate(op); err != nil {
		return nil, err
	}
	if err := img.validate(op); err != nil {
		return nil, err
	}
	if landmarks.Empty() {
		return Landmarks{}, nil
	}
	buf := landmarks.shapeBuffer(NLandmarks)
	if err := s.eng.ForcePointsIntoImage(buf, img.Width, img.Height); err != nil {
		return nil, s.fail(op, err)
	}
	return landmarksFromBuffer(buf, len(landmarks)), nil
}

// ConvertShape remaps a Stasm shape to format and returns a new set with
// format.Points() points. Shape17 accepts any length and always yields 17
// points. Every other format needs exactly NLandmarks points; any other
// length gives an empty result, as does an all-zero native output, which is
// how the library reports a shape it cannot convert. Neither case is an
// error.
func (s *Session) ConvertShape(landmarks Landmarks, format Format) (Landmarks, error) {
	const op = "ConvertShape"
	if err := s.check(op); err != nil {
		return nil, err
	}
	if !format.Valid() {
		return nil, errorf(op, ErrInvalidArgument, "unknown shape format %d", int(format))
	}
	if err := landmarks.validate(op); err != nil {
		return nil, err
	}
	if format.RequiresFullShape() && len(landmarks) != NLandmarks {
		return Landmarks{}, nil
	}

	buf := landmarks.shapeBuffer(max(NLandmarks, format.Points()))
	if err := s.eng.ConvertShape(buf, int(format)); err != nil {
		return nil, s.fail(op, err)
	}
	out := buf[:2*format.Points()]
	if format != Shape17 && allZero(out) {
		return Landmarks{}, nil
	}
	return landmarksFromBuffer(out, format.Points()), nil
}

func allZero(v []float32) bool {
	for _, f := range v {
		if f != 0 {
			return false
		}
	}
	return true
}
