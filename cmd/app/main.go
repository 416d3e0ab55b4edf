package main

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/0x0FACED/go-incremental/pkg/logger"
	"github.com/0x0FACED/go-incremental/pkg/voronoi"
	"github.com/0x0FACED/go-incremental/static"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

// Сторона плоскости по умолчанию (random и grid режимы)
const defaultSize = 600.0

// Генерируем случайные вершины внутри плоскости
func generateRandVertices(n int, size float64) []voronoi.Vertex {
	verts := make([]voronoi.Vertex, n)
	for i := 0; i < n; i++ {
		verts[i] = voronoi.Vertex{
			X: rand.Float64() * size,
			Y: rand.Float64() * size,
		}
	}
	return verts
}

// Генерируем вершины равномерной сеткой
func generateGridVertices(n int, size float64) []voronoi.Vertex {
	verts := make([]voronoi.Vertex, 0, n)

	rows := int(math.Sqrt(float64(n)))
	if rows < 1 {
		rows = 1
	}
	cols := (n + rows - 1) / rows

	xStep := size / float64(cols)
	yStep := size / float64(rows)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			// условие нужно, ибо строк и столбцов может хватать, например,
			// на 20 вершин, а мы 16-17 генерим
			if len(verts) < n {
				x := xStep/2 + float64(j)*xStep
				y := yStep/2 + float64(i)*yStep
				verts = append(verts, voronoi.Vertex{X: x, Y: y})
			} else {
				break
			}
		}
	}

	return verts
}

// Парсит вершины из текста. Формат как у файла с точками:
// первая строка - сторона плоскости, дальше по строке "x y".
// Отрицательные координаты и координаты больше стороны пропускаются,
// как и строки, которые не получилось разобрать
func parseVertices(text string, log *logger.ZapLogger) ([]voronoi.Vertex, float64, error) {
	sc := bufio.NewScanner(strings.NewReader(text))

	if !sc.Scan() {
		return nil, 0, fmt.Errorf("пустой ввод")
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
	if err != nil || size <= 0 {
		return nil, 0, fmt.Errorf("неверная сторона плоскости: %q", sc.Text())
	}

	var verts []voronoi.Vertex
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			log.Warn("[app] Строка с вершиной пропущена", zap.String("line", sc.Text()))
			continue
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			log.Warn("[app] Строка с вершиной пропущена", zap.String("line", sc.Text()))
			continue
		}
		// вершины вне плоскости игнорируем
		if x < 0 || y < 0 || x > size || y > size {
			log.Warn("[app] Вершина вне плоскости пропущена",
				zap.Float64("x", x), zap.Float64("y", y))
			continue
		}
		verts = append(verts, voronoi.Vertex{X: x, Y: y})
	}

	return verts, size, nil
}

func prepareScatter(scatter *charts.Scatter, size float64) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Диаграмма Вороного (инкрементальный)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "X",
			Min:  0,
			Max:  size,
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Y",
			Min:  0,
			Max:  size,
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Преобразуем диаграмму в Echarts для отображения.
// Первые три ячейки специальные, их не рисуем
func diagramToEcharts(diagram *voronoi.Diagram) *charts.Scatter {
	scatter := charts.NewScatter()

	cells := diagram.Cells()[3:]

	points := make([]opts.ScatterData, 0, len(cells))
	for _, cell := range cells {
		points = append(points, opts.ScatterData{
			Value: []float64{cell.Generator.X, cell.Generator.Y},
		})
	}

	// Дизайним скаттер
	prepareScatter(scatter, diagram.Size())

	scatter.AddSeries("Генераторы", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, cell := range cells {
		for _, border := range cell.Borders {
			// у соседа такая же граница, рисуем ее один раз;
			// специальные ячейки (id 0-2) сами не рисуются,
			// поэтому их границы оставляем за реальной ячейкой
			if border.Neigh != nil && border.Neigh.ID >= 3 && border.Neigh.ID < cell.ID {
				continue
			}

			line := charts.NewLine()
			line.SetGlobalOptions(
				charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
				charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
			)

			line.AddSeries("Границы", []opts.LineData{
				{Value: []float64{border.Start.X, border.Start.Y}},
				{Value: []float64{border.End.X, border.End.Y}},
			}).SetSeriesOptions(
				charts.WithLineStyleOpts(opts.LineStyle{
					Width: 2,
				}),
			)

			scatter.Overlap(line)
		}
	}

	return scatter
}

// http обработчик страницы с диаграммой и формой для ввода данных
func diagramHandler(w http.ResponseWriter, r *http.Request) {
	size := defaultSize
	numVertices := 12
	mode := "random"
	pointsText := ""

	if r.Method == http.MethodPost {
		r.ParseForm()
		if s, err := strconv.ParseFloat(r.FormValue("size"), 64); err == nil && s > 0 {
			size = s
		}
		if n, err := strconv.Atoi(r.FormValue("vertices")); err == nil && n >= 0 {
			numVertices = n
		}
		mode = r.FormValue("mode")
		pointsText = r.FormValue("points")
	}

	logger := logger.New()
	defer logger.ClearLogs()

	var verts []voronoi.Vertex

	switch mode {
	case "manual":
		parsed, parsedSize, err := parseVertices(pointsText, logger)
		if err != nil {
			logger.Error("[app] Не удалось разобрать вершины", zap.Error(err))
			verts = nil
		} else {
			verts = parsed
			size = parsedSize
		}
	case "grid":
		verts = generateGridVertices(numVertices, size)
	default:
		verts = generateRandVertices(numVertices, size)
	}

	logger.Info("[app] Строим диаграмму", zap.Float64("size", size), zap.Int("vertices", len(verts)))

	diagram := voronoi.NewDiagramFromVertices(verts, size, logger)

	logger.Info("[app] Диаграмма построена",
		zap.Int("cells", len(diagram.Cells())-3),
		zap.Int("searches", diagram.Searches),
		zap.Int("hash_misses", diagram.Hash.Misses))

	scatter := diagramToEcharts(diagram)

	fmt.Fprintln(w, static.Part1)

	err := scatter.Render(w)
	if err != nil {
		fmt.Println("Ошибка рендеринга диаграммы:", err)
	}

	fmt.Fprintln(w, static.Part2)

	// Вставляем логи в HTML
	for _, log := range logger.Logs {
		fmt.Fprintln(w, log)
	}

	fmt.Fprintln(w, static.Part3)
}

func main() {
	http.HandleFunc("/", diagramHandler)
	fmt.Println("Сервер запущен на http://localhost:8080")
	err := http.ListenAndServe(":8080", nil)
	if err != nil {
		fmt.Println("Err ListenAndServe", err)
	}
}
