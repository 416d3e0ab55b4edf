package voronoi

import (
	"math"

	"github.com/0x0FACED/go-incremental/pkg/logger"
	"go.uber.org/zap"
)

const (
	// Множитель границ плоскости для "супер"-границ. Гарантирует, что
	// ячейки трех специальных вершин не залезают на видимую плоскость
	superFactor = 4.0
	// Множитель супер-границ для биссектрис трех специальных вершин
	initBisectFactor = 4.0
	// Множитель супер-границ для биссектрис обычных вершин:
	// биссектриса всегда полностью пересекает любую ячейку
	generalBisectFactor = 3.0
)

// Диаграмма Вороного, построенная инкрементальным алгоритмом.
// Вершины добавляются по одной, после каждой вставки разбиение
// плоскости обновляется на месте. Для ускорения поиска ближайшей
// ячейки используется пространственное хеширование.
//
// Все операции синхронные и однопоточные: при использовании из
// нескольких горутин вызовы нужно сериализовать снаружи
type Diagram struct {
	// видимая плоскость диаграммы
	boundary BoundingBox
	// увеличенная рамка для построения биссектрис
	bisectorBound BoundingBox
	// все ячейки в порядке создания, первые три - специальные
	cells []*Cell
	// хеш для быстрой оценки ближайшей ячейки
	Hash *SpatialHash
	// Сколько шагов поиска сделал findCell
	Searches int
	// счетчик для выдачи идентификаторов ячеек
	idCell int

	log *logger.ZapLogger
}

// Пустая диаграмма над квадратной плоскостью со стороной size.
// Три специальные ячейки создаются сразу. Хеш перестраиваемый,
// так как заранее неизвестно, сколько вершин добавят
func NewDiagram(size float64, log *logger.ZapLogger) *Diagram {
	d := &Diagram{log: log}
	d.setup(size)
	planeSize := math.Max(d.boundary.XMax-d.boundary.XMin, d.boundary.YMax-d.boundary.YMin)
	d.Hash = NewSpatialHash(int(math.Ceil(planeSize)) + 1)
	return d
}

// Диаграмма, сразу построенная по набору вершин. Количество точек
// известно, поэтому хеш фиксированного размера.
// Количество бакетов = len(verts)/10 дает хорошую производительность
func NewDiagramFromVertices(verts []Vertex, size float64, log *logger.ZapLogger) *Diagram {
	d := &Diagram{log: log}
	d.setup(size)
	planeSize := math.Max(d.boundary.XMax-d.boundary.XMin, d.boundary.YMax-d.boundary.YMin)
	d.Hash = NewFixedSpatialHash(len(verts)/10, int(math.Ceil(planeSize))+1)

	for _, v := range verts {
		d.Insert(v)
	}
	return d
}

// Все ячейки диаграммы в порядке создания.
// Первые три - специальные, при отрисовке их пропускают
func (d *Diagram) Cells() []*Cell {
	return d.cells
}

// Сторона видимой плоскости (диаграмма всегда квадратная,
// левый верхний угол в (0, 0))
func (d *Diagram) Size() float64 {
	return d.boundary.XMax
}

// Insert добавляет вершину v и ее ячейку в диаграмму.
//
// Возвращает false без изменения диаграммы, если v дублирует
// существующий генератор или геометрия оказалась вырожденной
// (почти коллинеарные генераторы). Все изменения, сделанные до
// обнаружения ошибки, откатываются
func (d *Diagram) Insert(v Vertex) bool {
	// ячейка для новой вершины
	nCell := newCell(v, d.idCell)
	d.idCell++

	// ячейка, внутри которой лежит v
	first := d.findCell(v)

	// дубликаты пропускаем
	if v.Equal(first.Generator) {
		d.log.Warn("[inc] Попытка добавить дубликат вершины", zap.Stringer("v", v))
		return false
	}

	// Старые границы каждой измененной ячейки.
	// По ним можно откатить любые изменения диаграммы
	visited := make(map[*Cell][]*Line)

	// Цикл построения границы: обходим кольцо ячеек вокруг v,
	// пока не вернемся в стартовую
	curr := first
	for {
		// биссектриса между v и генератором текущей ячейки
		hp := newLine(v, curr.Generator).Bisector(d.bisectorBound)
		// первое пересечение и пересеченный отрезок
		var i1 Vertex
		var l1 *Line
		haveFirst := false
		// новый набор границ для curr
		var newBorder []*Line

		numIntersections := 0
		var next *Cell

		// Идем по всем границам ячейки в поисках пересечений
		for _, currLine := range curr.Borders {
			if inter, ok := hp.Intersection(currLine); ok {
				numIntersections++
				if !haveFirst {
					// первое пересечение
					i1 = inter
					l1 = currLine
					haveFirst = true
				} else {
					// на втором пересечении делаем изменения:
					// ориентацию разреза выбираем так, чтобы v была слева
					if crossProduct(i1, inter, v) > 0 {
						nCell.Borders = append(nCell.Borders, newBorderLine(i1, inter, curr))
						newBorder = append(newBorder, newBorderLine(i1, inter, nCell))
						next = currLine.Neigh
					} else {
						nCell.Borders = append(nCell.Borders, newBorderLine(inter, i1, curr))
						newBorder = append(newBorder, newBorderLine(inter, i1, nCell))
						next = l1.Neigh
					}
					// обрезанные части пересеченных отрезков уходят
					// в новую границу curr
					tmp := currLine.End
					if closerTo(currLine.Start, v, curr.Generator) == curr.Generator {
						tmp = currLine.Start
					}
					newBorder = append(newBorder, newBorderLine(inter, tmp, currLine.Neigh))
					tmp = l1.End
					if closerTo(l1.Start, v, curr.Generator) == curr.Generator {
						tmp = l1.Start
					}
					newBorder = append(newBorder, newBorderLine(i1, tmp, l1.Neigh))
				}
			}

			// отрезок целиком на стороне curr остается как есть,
			// целиком на стороне v - выбрасывается
			if closerTo(currLine.Start, curr.Generator, v) == curr.Generator &&
				closerTo(currLine.End, curr.Generator, v) == curr.Generator {
				newBorder = append(newBorder, currLine)
			}
		}

		// вырожденные случаи: откатываем все и выходим
		if numIntersections != 2 {
			d.log.Warn("[inc] Пропущена вырожденная ячейка: неверное число пересечений",
				zap.Stringer("v", v), zap.Int("intersections", numIntersections))
			d.revert(visited)
			return false
		}
		if _, seen := visited[curr]; seen {
			d.log.Warn("[inc] Пропущена вырожденная ячейка: пропущена граница ячейки",
				zap.Stringer("v", v))
			d.revert(visited)
			return false
		}

		// фиксируем изменения текущей ячейки и идем к соседу за разрезом
		visited[curr] = curr.Borders
		curr.Borders = newBorder
		curr = next

		if curr == first {
			break
		}
	}

	d.addCell(nCell)
	d.log.Debug("[inc] Вершина добавлена", zap.Stringer("v", v), zap.Int("id", nCell.ID),
		zap.Int("ring", len(visited)))
	return true
}

// Возвращает каждой измененной ячейке ее границы до начала вставки
func (d *Diagram) revert(visited map[*Cell][]*Line) {
	for c, borders := range visited {
		c.Borders = borders
	}
}

// Добавляет готовую ячейку (генератор и границы уже заполнены)
// в диаграмму. Специальные ячейки в хеш не попадают
func (d *Diagram) addCell(c *Cell) {
	if len(d.cells) >= 3 {
		d.Hash.Put(c)
	}
	d.cells = append(d.cells, c)
}

// Ищет ячейку, внутри которой лежит v: берем подсказку из хеша
// (или последнюю добавленную ячейку) и жадно спускаемся к соседу
// с более близким генератором, пока есть улучшение.
// Благодаря выпуклости диаграммы спуск сходится к нужной ячейке
func (d *Diagram) findCell(v Vertex) *Cell {
	guess := d.Hash.GuessClosest(v)
	curr := guess
	if len(d.cells) <= 3 || guess == nil {
		curr = d.cells[len(d.cells)-1]
	}
	best := distSquared(curr.Generator, v)
	for {
		d.Searches++
		old := best
		for _, vl := range curr.Borders {
			dist := distSquared(vl.Neigh.Generator, v)
			if dist < best {
				curr = vl.Neigh
				best = dist
			}
		}
		if old <= best {
			return curr
		}
	}
}

// Общая часть конструкторов: границы, рамки для биссектрис и три
// специальные вершины, которые требует алгоритм
func (d *Diagram) setup(maxDimension float64) {
	// Видимая плоскость всегда квадратная, левый верхний угол в (0, 0)
	d.boundary = NewBoundingBox(0, 0, maxDimension, maxDimension)

	xMin, yMin := d.boundary.XMin, d.boundary.YMin
	xMax, yMax := d.boundary.XMax, d.boundary.YMax

	xRange := xMax - xMin
	yRange := yMax - yMin
	xSuper := xRange * superFactor
	ySuper := yRange * superFactor

	// рамка для биссектрис обычных вершин
	d.bisectorBound = NewBoundingBox(
		xMin-xSuper*generalBisectFactor,
		yMin-ySuper*generalBisectFactor,
		xMax+xSuper*generalBisectFactor,
		yMax+ySuper*generalBisectFactor,
	)

	// рамка для биссектрис трех специальных вершин
	initBound := NewBoundingBox(
		xMin-xSuper*initBisectFactor,
		yMin-ySuper*initBisectFactor,
		xMax+xSuper*initBisectFactor,
		yMax+ySuper*initBisectFactor,
	)

	// Три специальные вершины образуют огромный треугольник вокруг
	// плоскости: любая разрешенная вершина окажется строго внутри,
	// и краевые случаи с бесконечными ячейками не возникают.
	// Точка пересечения трех ячеек держится в центре видимой
	// плоскости, чтобы диаграмма не выглядела перекошенной
	v1 := Vertex{xMin + xRange/2, yMin - ySuper + yRange/2}
	v2 := Vertex{xMax + xSuper - xRange/2, yMax + ySuper - ySuper/2}
	v3 := Vertex{xMin - xSuper + xRange/2, yMax + ySuper - ySuper/2}

	c1 := newCell(v1, d.idCell)
	d.idCell++
	c2 := newCell(v2, d.idCell)
	d.idCell++
	c3 := newCell(v3, d.idCell)
	d.idCell++

	// биссектрисы пар специальных вершин и их пересечения
	l1 := newLine(v1, v2).Bisector(initBound)
	l2 := newLine(v2, v3).Bisector(initBound)
	l3 := newLine(v1, v3).Bisector(initBound)

	i1, _ := l1.Intersection(l2)
	i2, _ := l2.Intersection(l3)
	i3, _ := l1.Intersection(l3)

	// собираем границы ячеек из биссектрис и пересечений
	c1.Borders = append(c1.Borders, newBorderLine(l1.Start, i1, c2))
	c2.Borders = append(c2.Borders, newBorderLine(l1.Start, i1, c1))
	c2.Borders = append(c2.Borders, newBorderLine(i2, l2.End, c3))
	c3.Borders = append(c3.Borders, newBorderLine(i2, l2.End, c2))
	c1.Borders = append(c1.Borders, newBorderLine(l3.Start, i3, c3))
	c3.Borders = append(c3.Borders, newBorderLine(l3.Start, i3, c1))

	d.addCell(c1)
	d.addCell(c2)
	d.addCell(c3)
}
