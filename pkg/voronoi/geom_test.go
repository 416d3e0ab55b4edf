package voronoi

import (
	"math"
	"testing"
)

func TestVertexEqual(t *testing.T) {
	a := Vertex{1, 2}
	if !a.Equal(Vertex{1, 2}) {
		t.Error("identical vertices should be equal")
	}
	if !a.Equal(Vertex{1 + EPSILON/2, 2 - EPSILON/2}) {
		t.Error("vertices within EPSILON should be equal")
	}
	if a.Equal(Vertex{1 + EPSILON*2, 2}) {
		t.Error("vertices apart by more than EPSILON should not be equal")
	}
	if a.Equal(Vertex{1, 2 + EPSILON*2}) {
		t.Error("vertices apart by more than EPSILON should not be equal")
	}
}

func TestCrossProduct(t *testing.T) {
	o := Vertex{0, 0}
	a := Vertex{1, 0}
	if cp := crossProduct(o, a, Vertex{1, 1}); cp <= 0 {
		t.Errorf("point left of o->a: cross product = %f, want > 0", cp)
	}
	if cp := crossProduct(o, a, Vertex{1, -1}); cp >= 0 {
		t.Errorf("point right of o->a: cross product = %f, want < 0", cp)
	}
	if cp := crossProduct(o, a, Vertex{2, 0}); cp != 0 {
		t.Errorf("collinear point: cross product = %f, want 0", cp)
	}
}

func TestDistSquared(t *testing.T) {
	if d := distSquared(Vertex{0, 0}, Vertex{3, 4}); d != 25 {
		t.Errorf("distSquared = %f, want 25", d)
	}
	if d := distance(Vertex{0, 0}, Vertex{3, 4}); d != 5 {
		t.Errorf("distance = %f, want 5", d)
	}
}

func TestCloserTo(t *testing.T) {
	to := Vertex{0, 0}
	near := Vertex{1, 1}
	far := Vertex{5, 5}
	if got := closerTo(to, near, far); got != near {
		t.Errorf("closerTo = %v, want %v", got, near)
	}
	if got := closerTo(to, far, near); got != near {
		t.Errorf("closerTo = %v, want %v", got, near)
	}
}

func TestBisectorVerticalSegment(t *testing.T) {
	bb := NewBoundingBox(0, 0, 10, 10)
	b := newLine(Vertex{5, 2}, Vertex{5, 8}).Bisector(bb)

	// перпендикуляр вертикального отрезка горизонтален и идет
	// через середину по всей ширине рамки
	if !b.Start.Equal(Vertex{0, 5}) || !b.End.Equal(Vertex{10, 5}) {
		t.Errorf("bisector = %v, want [(0,5) -> (10,5)]", b)
	}
}

func TestBisectorHorizontalSegment(t *testing.T) {
	bb := NewBoundingBox(0, 0, 10, 10)
	b := newLine(Vertex{2, 5}, Vertex{8, 5}).Bisector(bb)

	if !b.Start.Equal(Vertex{5, 0}) || !b.End.Equal(Vertex{5, 10}) {
		t.Errorf("bisector = %v, want [(5,0) -> (5,10)]", b)
	}
}

func TestBisectorGeneral(t *testing.T) {
	bb := NewBoundingBox(-10, -10, 20, 20)
	seg := newLine(Vertex{0, 0}, Vertex{10, 10})
	b := seg.Bisector(bb)

	// биссектриса отрезка (0,0)-(10,10) лежит на прямой x + y = 10
	for _, v := range []Vertex{b.Start, b.End} {
		if math.Abs(v.X+v.Y-10) > EPSILON {
			t.Errorf("bisector endpoint %v is not on x + y = 10", v)
		}
	}

	// каждая точка биссектрисы равноудалена от концов отрезка
	for _, v := range []Vertex{b.Start, b.End} {
		d1 := distance(v, seg.Start)
		d2 := distance(v, seg.End)
		if math.Abs(d1-d2) > EPSILON {
			t.Errorf("bisector endpoint %v: distances %f and %f differ", v, d1, d2)
		}
	}
}

func TestBisectorClippedToBox(t *testing.T) {
	bb := NewBoundingBox(0, 0, 10, 10)
	b := newLine(Vertex{1, 1}, Vertex{2, 2}).Bisector(bb)

	if !bb.Contains(b.Start) || !bb.Contains(b.End) {
		t.Errorf("bisector %v escapes bounding box", b)
	}
}

func TestIntersection(t *testing.T) {
	l1 := newLine(Vertex{0, 0}, Vertex{10, 10})
	l2 := newLine(Vertex{0, 10}, Vertex{10, 0})

	got, ok := l1.Intersection(l2)
	if !ok {
		t.Fatal("crossing segments should intersect")
	}
	if !got.Equal(Vertex{5, 5}) {
		t.Errorf("intersection = %v, want (5, 5)", got)
	}
}

func TestIntersectionParallel(t *testing.T) {
	l1 := newLine(Vertex{0, 0}, Vertex{10, 0})
	l2 := newLine(Vertex{0, 1}, Vertex{10, 1})

	if _, ok := l1.Intersection(l2); ok {
		t.Error("parallel segments should not intersect")
	}
}

func TestIntersectionOutsideSegment(t *testing.T) {
	// прямые пересекаются в (4.5, 4.5), но точка лежит
	// далеко за пределами первого отрезка
	l1 := newLine(Vertex{0, 0}, Vertex{1, 1})
	l2 := newLine(Vertex{5, 4}, Vertex{4, 5})

	if v, ok := l1.Intersection(l2); ok {
		t.Errorf("intersection %v is outside the first segment, want miss", v)
	}
}

func TestBoundingBoxContains(t *testing.T) {
	bb := NewBoundingBox(0, 0, 10, 10)

	if !bb.Contains(Vertex{5, 5}) {
		t.Error("interior point should be contained")
	}
	if !bb.Contains(Vertex{0, 0}) || !bb.Contains(Vertex{10, 10}) {
		t.Error("boundary points should be contained (EPSILON padding)")
	}
	if bb.Contains(Vertex{-1, 5}) || bb.Contains(Vertex{5, 11}) {
		t.Error("outside points should not be contained")
	}
}
