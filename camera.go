package gesture

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps screen pointer positions into scene coordinates for a panned
// and zoomed view, such as a scrolling list. Hit testing and the touch points
// handed to recognizers are in scene coordinates.
type Camera struct {
	// X and Y are the scene position shown at the viewport center.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle the camera covers.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	Bounds        Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera centered on its viewport at zoom 1, so screen
// and scene coordinates coincide until it is moved.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.X + viewport.Width/2,
		Y:        viewport.Y + viewport.Height/2,
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// ScrollTo animates the camera to the given scene position over duration.
func (c *Camera) ScrollTo(x, y float64, duration time.Duration, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	d := float32(duration.Seconds())
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), d, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), d, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// update advances scrolling and bounds clamping. Called from
// Scene.UpdateWithDelta before input is processed.
func (c *Camera) update(dt time.Duration) {
	if c.scrollTween != nil {
		step := float32(dt.Seconds())
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(step)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(step)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	if !c.BoundsEnabled {
		return
	}
	halfW := c.Viewport.Width / (2 * c.zoom())
	halfH := c.Viewport.Height / (2 * c.zoom())

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// SceneToScreen converts scene coordinates to screen coordinates.
func (c *Camera) SceneToScreen(x, y float64) (sx, sy float64) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.zoom()
	return cx + (x-c.X)*z, cy + (y-c.Y)*z
}

// ScreenToScene converts screen coordinates to scene coordinates.
func (c *Camera) ScreenToScene(sx, sy float64) (x, y float64) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.zoom()
	return c.X + (sx-cx)/z, c.Y + (sy-cy)/z
}

// VisibleBounds returns the scene-space rectangle the camera shows.
func (c *Camera) VisibleBounds() Rect {
	z := c.zoom()
	w := c.Viewport.Width / z
	h := c.Viewport.Height / z
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}
