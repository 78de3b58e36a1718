// Package logger centraliza el logging estructurado de StockMaster sobre
// zerolog: consola legible en desarrollo, JSON por stdout en producción.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // development -> ConsoleWriter; cualquier otro valor -> JSON
	Level string // trace, debug, info, warn, error, fatal
}

// Logger envuelve zerolog para inyectarlo por las capas de la app sin
// depender del logger global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz según el entorno y redirige también el logger
// global de zerolog, así las librerías que escriben por log.Logger salen por
// el mismo destino.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// parseLevel mapea el nivel configurado; un valor desconocido cae a info.
func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos (por ejemplo el nombre del componente).
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno para las dependencias que reciben
// zerolog.Logger directamente (caso de uso del dashboard, notificador).
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
