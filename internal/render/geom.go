package render

// GeoM is a 2D affine transformation matrix:
//
//	| A  C  TX |
//	| B  D  TY |
//
// The zero value is not the identity; use NewGeoM.
type GeoM struct {
	A, B, C, D float64
	TX, TY     float64
}

// NewGeoM returns the identity matrix.
func NewGeoM() GeoM {
	return GeoM{A: 1, D: 1}
}

// Reset resets the matrix to identity.
func (g *GeoM) Reset() {
	*g = NewGeoM()
}

// Translate shifts the result by (tx, ty).
func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

// Scale scales the result by (sx, sy).
func (g *GeoM) Scale(sx, sy float64) {
	g.A *= sx
	g.C *= sx
	g.TX *= sx
	g.B *= sy
	g.D *= sy
	g.TY *= sy
}

// Concat applies other after g.
func (g *GeoM) Concat(other GeoM) {
	a := other.A*g.A + other.C*g.B
	b := other.B*g.A + other.D*g.B
	c := other.A*g.C + other.C*g.D
	d := other.B*g.C + other.D*g.D
	tx := other.A*g.TX + other.C*g.TY + other.TX
	ty := other.B*g.TX + other.D*g.TY + other.TY
	g.A, g.B, g.C, g.D, g.TX, g.TY = a, b, c, d, tx, ty
}

// Apply transforms the point (x, y).
func (g GeoM) Apply(x, y float64) (float64, float64) {
	return g.A*x + g.C*y + g.TX, g.B*x + g.D*y + g.TY
}

// Invert returns the inverse matrix. ok is false when the matrix is singular
// (e.g. a node scaled to zero).
func (g GeoM) Invert() (inv GeoM, ok bool) {
	det := g.A*g.D - g.B*g.C
	if det == 0 {
		return GeoM{}, false
	}
	inv.A = g.D / det
	inv.B = -g.B / det
	inv.C = -g.C / det
	inv.D = g.A / det
	inv.TX = -(inv.A*g.TX + inv.C*g.TY)
	inv.TY = -(inv.B*g.TX + inv.D*g.TY)
	return inv, true
}
