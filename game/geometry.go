package game

// Rect is an axis-aligned bounding box in canvas coordinates.
type Rect struct {
	X, Y float64
	W, H float64
}

// Intersects reports whether two rectangles overlap on both axes.
// The comparison is strict: rectangles that only share an edge do not
// intersect, and zero-size rectangles behave as points.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }
