package voronoi

import "math"

// Смещения до соседних бакетов в порядке приоритета:
// сам бакет, четыре соседних по осям, четыре диагональных
var offsets = [9][2]int{
	{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// Пространственная хеш-таблица для быстрой (приблизительной!) оценки
// ближайшей ячейки к новой вершине. Результат - только подсказка,
// диаграмма всегда уточняет его локальным спуском
type SpatialHash struct {
	// можно ли перестраивать таблицу при росте
	allowResize bool
	// сколько всего ячеек было добавлено
	cells int
	empty bool
	// Количество неудачных guessClosest
	Misses int
	// сторона одного бакета
	size int
	// таблица бакетов, в бакете максимум одна ячейка
	space [][]*Cell
	// сторона плоскости, по которой хешируем
	totalSize int
}

// Хеш, который сам перестраивается под любое количество точек.
// Работает как слайс с append: амортизированное O(1) на операцию.
// Подходит для интерактивной диаграммы, когда заранее неизвестно,
// сколько вершин добавят
func NewSpatialHash(totalSize int) *SpatialHash {
	h := &SpatialHash{
		totalSize:   totalSize,
		allowResize: true,
		empty:       true,
	}
	h.resize(10)
	return h
}

// Хеш фиксированного размера, никогда не перестраивается.
// Подходит, когда количество точек известно заранее
func NewFixedSpatialHash(buckets, totalSize int) *SpatialHash {
	h := &SpatialHash{
		totalSize: totalSize,
		empty:     true,
	}
	h.resize(buckets)
	return h
}

// Оценка ближайшей к v ячейки: проверяем бакет вершины и восемь
// соседних. Если все пустые или вне таблицы - промах (nil)
func (h *SpatialHash) GuessClosest(v Vertex) *Cell {
	if h.empty {
		return nil
	}

	i := int(v.X) / h.size
	j := int(v.Y) / h.size

	for _, os := range offsets {
		a := i + os[0]
		b := j + os[1]
		if h.isValid(a, b) {
			return h.space[a][b]
		}
	}
	h.Misses++
	return nil
}

// Кладет ячейку в таблицу. Если бакет уже занят, ячейка не сохраняется,
// но в счетчике все равно учитывается
func (h *SpatialHash) Put(c *Cell) {
	h.cells++
	if h.allowResize && h.cells > len(h.space)*len(h.space)*3 {
		h.resize(h.cells * 10)
	}
	i := int(c.Generator.X) / h.size
	j := int(c.Generator.Y) / h.size

	if h.space[i][j] == nil {
		h.space[i][j] = c
		h.empty = false
	}
}

// Валидная позиция - внутри таблицы и с непустым бакетом
func (h *SpatialHash) isValid(i, j int) bool {
	return i >= 0 && i < len(h.space) && j >= 0 && j < len(h.space) &&
		h.space[i][j] != nil
}

// Перестраивает таблицу под n бакетов и перекладывает все,
// что уже было сохранено
func (h *SpatialHash) resize(n int) {
	buckets := int(math.Sqrt(float64(n)))
	if buckets < 1 {
		buckets = 1
	}
	h.size = int(math.Ceil(float64(h.totalSize) / float64(buckets)))
	tmp := h.space
	h.space = make([][]*Cell, buckets+1)
	for i := range h.space {
		h.space[i] = make([]*Cell, buckets+1)
	}
	for i := range tmp {
		for j := range tmp[i] {
			if tmp[i][j] != nil {
				h.Put(tmp[i][j])
			}
		}
	}
}

// Сторона таблицы в бакетах. Нужно тестам и логам после построения
func (h *SpatialHash) Buckets() int {
	return len(h.space)
}
