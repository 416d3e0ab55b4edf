package voronoi

import (
	"fmt"
	"math"
)

// Эпсилон для сравнения чисел с плавающей точкой.
// Один на весь пакет: все сравнения расстояний и пересечений идут через него
const EPSILON = 0.0000001

type Vertex struct {
	X float64
	Y float64
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%f, %f)", v.X, v.Y)
}

// Две вершины равны, если обе координаты отличаются меньше чем на EPSILON
func (v Vertex) Equal(o Vertex) bool {
	return math.Abs(v.X-o.X) < EPSILON && math.Abs(v.Y-o.Y) < EPSILON
}

// Векторное произведение (v2-v1) x (v3-v1).
// Знак говорит, с какой стороны от прямой v1->v2 лежит v3
func crossProduct(v1, v2, v3 Vertex) float64 {
	return (v2.X-v1.X)*(v3.Y-v1.Y) - (v2.Y-v1.Y)*(v3.X-v1.X)
}

// Квадрат евклидова расстояния. Для сравнений корень не нужен
func distSquared(v1, v2 Vertex) float64 {
	return (v2.X-v1.X)*(v2.X-v1.X) + (v2.Y-v1.Y)*(v2.Y-v1.Y)
}

func distance(v1, v2 Vertex) float64 {
	return math.Sqrt(distSquared(v1, v2))
}

// Возвращает ту из вершин v1, v2, которая ближе к to
func closerTo(to, v1, v2 Vertex) Vertex {
	if distSquared(to, v1) < distSquared(to, v2) {
		return v1
	}
	return v2
}
