package geom

import "testing"

func TestPointInPolygon(t *testing.T) {
	square := Polygon{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}

	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Pt(5, 5), true},
		{"outside right", Pt(11, 5), false},
		{"outside above", Pt(5, -0.1), false},
		{"on left edge", Pt(0, 5), true},
		{"on bottom edge", Pt(5, 10), true},
		{"on vertex", Pt(10, 10), true},
		{"far away", Pt(-100, -100), false},
	}

	for _, c := range cases {
		if got := square.Contains(c.p); got != c.want {
			t.Errorf("%s: Contains(%v) = %v, expected %v", c.name, c.p, got, c.want)
		}
	}
}

func TestPointInConcavePolygon(t *testing.T) {
	// U shape, open at the top between x=4..6
	u := Polygon{Pt(0, 0), Pt(4, 0), Pt(4, 6), Pt(6, 6), Pt(6, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}

	if u.Contains(Pt(5, 3)) {
		t.Error("Expected notch of U shape to be outside")
	}
	if !u.Contains(Pt(2, 3)) {
		t.Error("Expected left arm of U shape to be inside")
	}
	if !u.Contains(Pt(5, 8)) {
		t.Error("Expected base of U shape to be inside")
	}
}

func TestDegeneratePolygon(t *testing.T) {
	line := Polygon{Pt(0, 0), Pt(10, 0)}
	if line.Contains(Pt(5, 0)) {
		t.Error("Expected polygon with fewer than 3 vertices to contain nothing")
	}
}

func TestLerpAndDistance(t *testing.T) {
	a, b := Pt(0, 0), Pt(3, 4)

	if d := Distance(a, b); d != 5 {
		t.Errorf("Expected distance 5, got %f", d)
	}

	mid := Lerp(a, b, 0.5)
	if mid != Pt(1.5, 2) {
		t.Errorf("Expected midpoint (1.5, 2), got %v", mid)
	}

	if end := Lerp(a, b, 1); end != b {
		t.Errorf("Expected Lerp(t=1) to equal b, got %v", end)
	}
}
