package voronoi

// Ограничивающий прямоугольник (осеориентированный)
type BoundingBox struct {
	XMin, YMin, XMax, YMax float64
}

func NewBoundingBox(xMin, yMin, xMax, yMax float64) BoundingBox {
	return BoundingBox{xMin, yMin, xMax, yMax}
}

// Проверка с допуском EPSILON, чтобы точки на границе считались внутри
func (bb BoundingBox) Contains(v Vertex) bool {
	return v.X > bb.XMin-EPSILON && v.X < bb.XMax+EPSILON &&
		v.Y > bb.YMin-EPSILON && v.Y < bb.YMax+EPSILON
}
