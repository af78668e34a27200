package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config parámetros del logger de la aplicación.
type Config struct {
	Env   string // development emite consola legible; cualquier otro valor, JSON
	Level string // debug, info, warn, error
}

// Logger envuelve un zerolog.Logger para inyectarlo por constructor en el resto de
// la aplicación.
type Logger struct {
	zl zerolog.Logger
}

// New arma el logger estructurado según el entorno y deja el logger global de zerolog
// apuntando al mismo destino, para las librerías que escriben por ahí.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// parseLevel mapea el nivel configurado; un valor desconocido cae en info.
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
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos (ej. el componente que lo usa).
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
