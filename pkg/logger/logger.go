package logger

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Логгер на базе zap, который пишет в буфер, а не в stdout.
// Содержимое буфера конвертируется в HTML и показывается
// на странице диаграммы рядом с графиком
type ZapLogger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
	Logs   []string
}

func New() *ZapLogger {
	logBuf := &bytes.Buffer{}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(logBuf), zap.DebugLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return &ZapLogger{
		log:    logger,
		logBuf: logBuf,
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

// Уровень логирования раскрашивается ANSI-кодами,
// в HTML они потом превращаются в цветные span
func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiRe = regexp.MustCompile(`\033\[(\d+)m`)

// Соответствие ANSI-кодов цветам CSS
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// Конвертирует ANSI-коды цвета в HTML span с inline-стилями
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	// открыт ли сейчас цветной span
	openSpan := false

	// <pre> сохраняет пробелы и переносы строк
	result.WriteString("<pre>")

	for _, match := range ansiRe.FindAllStringIndex(input, -1) {
		start := match[0]
		end := match[1]

		// текст до ANSI-кода
		if start > lastIndex {
			result.WriteString(input[lastIndex:start])
		}

		code := input[start+2 : end-1]
		if color, ok := colorMap[code]; ok {
			if openSpan {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			openSpan = true
		} else if code == "0" {
			// сброс закрывает текущий цвет
			if openSpan {
				result.WriteString("</span>")
				openSpan = false
			}
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(input[lastIndex:])
	}
	if openSpan {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")
	return result.String()
}

func (z *ZapLogger) UpdateLogs() {
	htmlLogs := ansiToHTML(z.logBuf.String())
	z.Logs = []string{htmlLogs}
}

func (z *ZapLogger) ClearLogs() {
	z.logBuf.Reset()
	z.Logs = nil
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.log.Info(msg, fields...)
	z.UpdateLogs()
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.log.Debug(msg, fields...)
	z.UpdateLogs()
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.log.Warn(msg, fields...)
	z.UpdateLogs()
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.log.Error(msg, fields...)
	z.UpdateLogs()
}

func (z *ZapLogger) Fatal(msg string, fields ...zap.Field) {
	z.log.Fatal(msg, fields...)
	z.UpdateLogs()
}
