package voronoi

import (
	"math/rand"
	"testing"
)

func TestGuessClosestEmpty(t *testing.T) {
	h := NewSpatialHash(101)

	if c := h.GuessClosest(Vertex{50, 50}); c != nil {
		t.Errorf("empty hash returned %v, want nil", c)
	}
	// пустая таблица не считается промахом
	if h.Misses != 0 {
		t.Errorf("misses = %d, want 0", h.Misses)
	}
}

func TestFixedHashPutAndGuess(t *testing.T) {
	h := NewFixedSpatialHash(10, 100)
	c := newCell(Vertex{50, 50}, 0)
	h.Put(c)

	if got := h.GuessClosest(Vertex{52, 52}); got != c {
		t.Errorf("GuessClosest = %v, want %v", got, c)
	}
}

func TestGuessClosestDiagonalProbe(t *testing.T) {
	h := NewFixedSpatialHash(100, 1001)
	c := newCell(Vertex{50, 50}, 0)
	h.Put(c)

	// (150, 150) попадает в соседний по диагонали бакет
	if got := h.GuessClosest(Vertex{150, 150}); got != c {
		t.Errorf("GuessClosest = %v, want %v", got, c)
	}
}

func TestFirstWriterWins(t *testing.T) {
	h := NewFixedSpatialHash(9, 100)
	c1 := newCell(Vertex{10, 10}, 0)
	c2 := newCell(Vertex{20, 20}, 1)

	// обе ячейки попадают в один бакет, сохраняется первая
	h.Put(c1)
	h.Put(c2)

	if got := h.GuessClosest(Vertex{5, 5}); got != c1 {
		t.Errorf("GuessClosest = %v, want first stored cell %v", got, c1)
	}
}

func TestResizableHashRehashes(t *testing.T) {
	h := NewSpatialHash(1001)
	initialBuckets := h.Buckets()

	// 500 ячеек, равномерно разбросанных по области
	for i := 0; i < 500; i++ {
		v := Vertex{float64(i%25)*10 + 5, float64(i/25)*10 + 5}
		h.Put(newCell(v, i))
	}

	if h.Buckets() <= initialBuckets {
		t.Errorf("buckets = %d, want more than initial %d after rehash", h.Buckets(), initialBuckets)
	}

	// рядом с кластером подсказка находится
	if got := h.GuessClosest(Vertex{100, 100}); got == nil {
		t.Error("GuessClosest near stored cells returned nil")
	}

	// точка далеко за пределами окрестности 3x3 любого генератора -
	// промах, счетчик увеличивается ровно на 1
	missesBefore := h.Misses
	if got := h.GuessClosest(Vertex{900, 900}); got != nil {
		t.Errorf("GuessClosest far from stored cells = %v, want nil", got)
	}
	if h.Misses != missesBefore+1 {
		t.Errorf("misses = %d, want %d", h.Misses, missesBefore+1)
	}
}

func TestFixedHashNeverResizes(t *testing.T) {
	h := NewFixedSpatialHash(100, 1001)
	buckets := h.Buckets()

	for i := 0; i < 400; i++ {
		v := Vertex{float64(i%20) * 50, float64(i/20) * 50}
		h.Put(newCell(v, i))
	}

	if h.Buckets() != buckets {
		t.Errorf("buckets = %d, want %d (fixed hash must not resize)", h.Buckets(), buckets)
	}
}

func BenchmarkPut(b *testing.B) {
	rnd := rand.New(rand.NewSource(1234567))
	h := NewSpatialHash(100001)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := Vertex{rnd.Float64() * 100000, rnd.Float64() * 100000}
		h.Put(newCell(v, i))
	}
}

func BenchmarkGuessClosest(b *testing.B) {
	rnd := rand.New(rand.NewSource(1234567))
	h := NewSpatialHash(100001)
	for i := 0; i < 10000; i++ {
		v := Vertex{rnd.Float64() * 100000, rnd.Float64() * 100000}
		h.Put(newCell(v, i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.GuessClosest(Vertex{rnd.Float64() * 100000, rnd.Float64() * 100000})
	}
}
