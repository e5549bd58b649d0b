package pagetext

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Identity is the transform that leaves page space unchanged.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Translate returns a transform moving points by (dx, dy).
func Translate(dx, dy float64) f64.Aff3 {
	return f64.Aff3{1, 0, dx, 0, 1, dy}
}

// Scale returns a transform scaling around the origin.
func Scale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// Concat returns the transform that applies a first and then b.
func Concat(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		b[0]*a[0] + b[1]*a[3],
		b[0]*a[1] + b[1]*a[4],
		b[0]*a[2] + b[1]*a[5] + b[2],
		b[3]*a[0] + b[4]*a[3],
		b[3]*a[1] + b[4]*a[4],
		b[3]*a[2] + b[4]*a[5] + b[5],
	}
}

// Apply maps the point (x, y) through t.
func Apply(t f64.Aff3, x, y float64) (float64, float64) {
	return t[0]*x + t[1]*y + t[2], t[3]*x + t[4]*y + t[5]
}

// Point is a position in some coordinate space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle: X, Y is the top-left corner.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Max(r.MaxX(), o.MaxX()) - x,
		H: math.Max(r.MaxY(), o.MaxY()) - y,
	}
}

// Transform returns the axis-aligned bounds of r mapped through t.
func (r Rect) Transform(t f64.Aff3) Rect {
	p := r.Path(t)
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Path returns the four corners of r mapped through t, in winding order.
func (r Rect) Path(t f64.Aff3) Path {
	corners := [4]Point{
		{r.X, r.Y},
		{r.MaxX(), r.Y},
		{r.MaxX(), r.MaxY()},
		{r.X, r.MaxY()},
	}
	p := make(Path, 4)
	for i, c := range corners {
		p[i].X, p[i].Y = Apply(t, c.X, c.Y)
	}
	return p
}

// Path is a closed convex polygon.
type Path []Point

// Contains reports whether pt lies inside the polygon or on its edge.
func (p Path) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	sign := 0
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}

// Intersects reports whether the polygon overlaps the rectangle r.
// Both shapes are convex, so they are disjoint iff some edge normal
// separates their projections.
func (p Path) Intersects(r Rect) bool {
	if len(p) == 0 {
		return false
	}
	q := r.Path(Identity)
	for _, shape := range []Path{p, q} {
		for i := range shape {
			a, b := shape[i], shape[(i+1)%len(shape)]
			nx, ny := a.Y-b.Y, b.X-a.X
			if nx == 0 && ny == 0 {
				continue
			}
			minP, maxP := p.project(nx, ny)
			minQ, maxQ := q.project(nx, ny)
			if maxP < minQ || maxQ < minP {
				return false
			}
		}
	}
	return true
}

func (p Path) project(nx, ny float64) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, pt := range p {
		d := pt.X*nx + pt.Y*ny
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

type cacheState uint8

const (
	notComputed cacheState = iota
	cacheValid
	cacheInvalidated
)

// boundsCache holds a bounding box derived from the element's children.
// Only the writer (ingestion, ApplyTransform, Merge) stores into it, so
// concurrent readers never write.
type boundsCache struct {
	state cacheState
	rect  Rect
}

// get returns the cached value. An element whose cache is not valid is
// bounded by calling compute, and the result is not stored.
func (c *boundsCache) get(compute func() (Rect, bool)) (Rect, bool) {
	if c.state == cacheValid {
		return c.rect, true
	}
	return compute()
}

// extend grows the cached value to cover r. The first extent seeds an
// empty cache; an invalidated one waits for refresh.
func (c *boundsCache) extend(r Rect) {
	switch c.state {
	case cacheValid:
		c.rect = c.rect.Union(r)
	case notComputed:
		c.rect = r
		c.state = cacheValid
	}
}

func (c *boundsCache) invalidate() {
	if c.state != notComputed {
		c.state = cacheInvalidated
	}
}

// refresh recomputes an invalidated value.
func (c *boundsCache) refresh(compute func() (Rect, bool)) {
	if c.state != cacheInvalidated {
		return
	}
	r, ok := compute()
	if !ok {
		c.state = notComputed
		return
	}
	c.rect = r
	c.state = cacheValid
}
