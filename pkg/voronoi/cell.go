package voronoi

// Ячейка диаграммы Вороного.
// Генератор неизменен после создания, меняется только список границ
type Cell struct {
	// Уникальный идентификатор в рамках одной диаграммы
	ID int
	// Точка-генератор ячейки
	Generator Vertex
	// Отрезки, ограничивающие ячейку (выпуклый многоугольник вокруг генератора)
	Borders []*Line
}

func newCell(generator Vertex, id int) *Cell {
	return &Cell{ID: id, Generator: generator}
}

func (c *Cell) String() string {
	return c.Generator.String()
}
