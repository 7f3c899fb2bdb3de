package gesture

// HitShape is a hit area in a node's local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle. Edges count.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points may be given in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon, using the sign of
// the cross product against every edge.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		switch {
		case cross > 0:
			positive = true
		case cross < 0:
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// nodeHit reports whether the scene-space point falls inside n's hit area.
// Nodes without a HitShape are never hit.
func nodeHit(n *Node, wx, wy float64) bool {
	if n.HitShape == nil {
		return false
	}
	lx, ly := n.WorldToLocal(wx, wy)
	return n.HitShape.Contains(lx, ly)
}
