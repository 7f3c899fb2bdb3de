package gesture

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenPointerSource reads the mouse (pointer 0, left button) and up to nine
// touches (pointers 1-9) from Ebitengine, in screen pixels. Give the scene a
// Camera to pan or zoom the view.
type EbitenPointerSource struct {
	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
}

// NewEbitenPointerSource creates a pointer source backed by Ebitengine input.
func NewEbitenPointerSource() *EbitenPointerSource {
	return &EbitenPointerSource{}
}

// AppendPointers implements PointerSource.
func (src *EbitenPointerSource) AppendPointers(buf []PointerSample) []PointerSample {
	mx, my := ebiten.CursorPosition()
	buf = append(buf, PointerSample{
		ID:      0,
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})

	src.touchIDs = ebiten.AppendTouchIDs(src.touchIDs[:0])
	var active [maxPointers]bool
	for _, tid := range src.touchIDs {
		slot := src.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		buf = append(buf, PointerSample{ID: slot, X: float64(tx), Y: float64(ty), Pressed: true})
	}
	// Free slots whose touch ended; the scene sees them missing and releases.
	for i := 1; i < maxPointers; i++ {
		if src.touchUsed[i] && !active[i] {
			src.touchUsed[i] = false
			src.touchMap[i] = 0
		}
	}
	return buf
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (src *EbitenPointerSource) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if src.touchUsed[i] && src.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !src.touchUsed[i] {
			src.touchUsed[i] = true
			src.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Draw is called every frame after the scene is updated. Optional.
	Draw func(screen *ebiten.Image)
}

type gameShell struct {
	scene *Scene
	cfg   RunConfig
}

func (g *gameShell) Update() error {
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
}

func (g *gameShell) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives the scene from Ebitengine's game loop. If
// the scene has no pointer source, an EbitenPointerSource is installed.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if scene.source == nil {
		scene.SetPointerSource(NewEbitenPointerSource())
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}
