package voronoi

import (
	"fmt"
	"math"
)

// Отрезок в 2D. Если отрезок является границей ячейки,
// Neigh указывает на соседнюю ячейку с такой же границей
type Line struct {
	Start Vertex
	End   Vertex
	Neigh *Cell
}

func newLine(start, end Vertex) *Line {
	return &Line{Start: start, End: end}
}

func newBorderLine(start, end Vertex, neigh *Cell) *Line {
	return &Line{Start: start, End: end, Neigh: neigh}
}

func (l *Line) String() string {
	return fmt.Sprintf("[%s -> %s]", l.Start, l.End)
}

// Серединный перпендикуляр отрезка, обрезанный по bb.
// Прямая задается как y = m*x + c, где m - наклон, c - константа
func (l *Line) Bisector(bb BoundingBox) *Line {
	// середина отрезка, через нее проходит перпендикуляр
	xMid := (l.Start.X + l.End.X) / 2
	yMid := (l.Start.Y + l.End.Y) / 2

	// вырожденные направления: для вертикального отрезка перпендикуляр
	// горизонтален (и наоборот)
	if math.Abs(l.Start.X-l.End.X) < EPSILON {
		return newLine(Vertex{bb.XMin, yMid}, Vertex{bb.XMax, yMid})
	}
	if math.Abs(l.Start.Y-l.End.Y) < EPSILON {
		return newLine(Vertex{xMid, bb.YMin}, Vertex{xMid, bb.YMax})
	}

	// наклон и константа перпендикуляра
	m := -(l.End.X - l.Start.X) / (l.End.Y - l.Start.Y)
	c := yMid - m*xMid

	// Считаем, что прямая идет от yMin к yMax, и поджимаем концы,
	// вышедшие за bb, к ближайшей вертикальной грани

	x1 := (bb.YMin - c) / m
	y1 := bb.YMin
	if x1 < bb.XMin {
		x1 = bb.XMin
		y1 = m*bb.XMin + c
	} else if x1 > bb.XMax {
		x1 = bb.XMax
		y1 = m*bb.XMax + c
	}

	x2 := (bb.YMax - c) / m
	y2 := bb.YMax
	if x2 < bb.XMin {
		x2 = bb.XMin
		y2 = m*bb.XMin + c
	} else if x2 > bb.XMax {
		x2 = bb.XMax
		y2 = m*bb.XMax + c
	}

	return newLine(Vertex{x1, y1}, Vertex{x2, y2})
}

// Точка пересечения двух отрезков через определитель.
// ok == false, если отрезки параллельны или точка лежит
// вне границ одного из отрезков (с допуском EPSILON)
func (l *Line) Intersection(o *Line) (Vertex, bool) {
	det := (l.Start.X-l.End.X)*(o.Start.Y-o.End.Y) - (l.Start.Y-l.End.Y)*(o.Start.X-o.End.X)

	// параллельные (или почти параллельные) прямые
	if math.Abs(det) <= EPSILON {
		return Vertex{}, false
	}

	a := l.Start.X*l.End.Y - l.Start.Y*l.End.X
	b := o.Start.X*o.End.Y - o.Start.Y*o.End.X
	x := (a*(o.Start.X-o.End.X) - (l.Start.X-l.End.X)*b) / det
	y := (a*(o.Start.Y-o.End.Y) - (l.Start.Y-l.End.Y)*b) / det

	if x+EPSILON < math.Min(l.Start.X, l.End.X) ||
		x-EPSILON > math.Max(l.Start.X, l.End.X) ||
		x+EPSILON < math.Min(o.Start.X, o.End.X) ||
		x-EPSILON > math.Max(o.Start.X, o.End.X) {
		return Vertex{}, false
	}
	if y+EPSILON < math.Min(l.Start.Y, l.End.Y) ||
		y-EPSILON > math.Max(l.Start.Y, l.End.Y) ||
		y+EPSILON < math.Min(o.Start.Y, o.End.Y) ||
		y-EPSILON > math.Max(o.Start.Y, o.End.Y) {
		return Vertex{}, false
	}

	return Vertex{x, y}, true
}
