package gesture

import (
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, recognized gestures are forwarded to the ECS.
type EntityStore interface {
	EmitGesture(event GestureEvent)
}

// GestureEvent describes a recognized gesture for observers and the ECS bridge.
type GestureEvent struct {
	Kind         Kind
	AttachmentID uuid.UUID
	// Node is the bound node; Target is the node the pointer went down on.
	NodeID   uint32
	NodeName string
	TargetID uint32
	EntityID uint32
	X, Y     float64
	Time     time.Duration
}

// Scene owns the node document, the timer clock, input state and the
// gesture dispatcher.
type Scene struct {
	root   *Node
	store  EntityStore
	debug  bool
	cfg    Config
	logger *logrus.Logger
	log    logrus.FieldLogger

	timers *Timers
	events *Events
	camera *Camera

	// Input state
	source      PointerSource
	samples     []PointerSample
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	gestureHandlers []gestureHandler
	nextHandlerID   uint32
}

// Option configures a Scene at construction.
type Option func(*Scene)

// WithConfig sets the recognizer configuration.
func WithConfig(cfg Config) Option {
	return func(s *Scene) { s.cfg = cfg }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEntityStore sets the ECS bridge.
func WithEntityStore(store EntityStore) Option {
	return func(s *Scene) { s.store = store }
}

// WithCamera sets the view used to map screen pointers into the scene.
func WithCamera(cam *Camera) Option {
	return func(s *Scene) { s.camera = cam }
}

// WithPointerSource sets where live pointer input comes from.
func WithPointerSource(src PointerSource) Option {
	return func(s *Scene) { s.source = src }
}

// NewScene creates a scene with a pre-created root node. Without a pointer
// source the scene only sees injected input.
func NewScene(opts ...Option) *Scene {
	root := NewNode("document", "root")
	s := &Scene{
		root:   root,
		cfg:    DefaultConfig(),
		logger: newDefaultLogger(),
		timers: newTimers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.logger.WithField("scene", root.ID)
	s.events = &Events{scene: s}
	if s.cfg.Debug {
		s.SetDebugMode(true)
	}
	return s
}

// Root returns the scene's root node (the document).
func (s *Scene) Root() *Node {
	return s.root
}

// Events returns the gesture dispatcher bound to this scene.
func (s *Scene) Events() *Events {
	return s.events
}

// Timers returns the scene clock and timer scheduler.
func (s *Scene) Timers() *Timers {
	return s.timers
}

// Now returns the scene clock.
func (s *Scene) Now() time.Duration {
	return s.timers.Now()
}

// Config returns the recognizer configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// Logger returns the scene logger.
func (s *Scene) Logger() *logrus.Logger {
	return s.logger
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// Camera returns the scene camera, or nil when screen and scene coordinates
// coincide.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetCamera sets the view used to map pointer input. nil removes it.
func (s *Scene) SetCamera(cam *Camera) {
	s.camera = cam
}

// SetPointerSource sets the live input source. nil disables live input.
func (s *Scene) SetPointerSource(src PointerSource) {
	s.source = src
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and every
// dispatched pointer event and recognized gesture is logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLog = s.log
	} else {
		debugLog = nil
	}
	if enabled {
		s.logger.SetLevel(logrus.DebugLevel)
	} else if s.logger.GetLevel() == logrus.DebugLevel {
		s.logger.SetLevel(logrus.WarnLevel)
	}
}

// Update advances the scene by one Ebitengine tick.
func (s *Scene) Update() {
	s.UpdateWithDelta(time.Second / time.Duration(ebiten.TPS()))
}

// UpdateWithDelta advances the clock by dt (firing due timers), moves the
// camera, steps an attached TestRunner, then processes one frame of input.
func (s *Scene) UpdateWithDelta(dt time.Duration) {
	s.timers.Advance(dt)
	if s.camera != nil {
		s.camera.update(dt)
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
}

// --- Gesture observers ---

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	scene *Scene
}

// OnGesture registers a scene-level callback that receives every gesture
// recognized by any attachment, after the attachment's own callback.
func (s *Scene) OnGesture(fn func(GestureEvent)) CallbackHandle {
	s.nextHandlerID++
	id := s.nextHandlerID
	s.gestureHandlers = append(s.gestureHandlers, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, scene: s}
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.scene == nil {
		return
	}
	s := h.scene.gestureHandlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			h.scene.gestureHandlers = s[:len(s)-1]
			return
		}
	}
}

// emitGesture fans a recognized gesture out to observers and the ECS bridge.
func (s *Scene) emitGesture(ge GestureEvent) {
	s.log.WithFields(logrus.Fields{
		"gesture":    ge.Kind.String(),
		"node":       ge.NodeName,
		"attachment": ge.AttachmentID,
		"x":          ge.X,
		"y":          ge.Y,
	}).Debug("gesture recognized")
	for _, h := range s.gestureHandlers {
		h.fn(ge)
	}
	if s.store != nil {
		s.store.EmitGesture(ge)
	}
}
