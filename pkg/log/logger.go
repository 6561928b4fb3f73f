package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/op/go-logging"
)

// Level orders verbosity from most to least chatty.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = [...]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var (
	colourFormat = logging.MustStringFormatter(
		`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
	)
	plainFormat = logging.MustStringFormatter(
		`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
	)
)

// sink owns the go-logging backend so SetSink and SetLevel can be called in
// any order without losing the other's setting
var sink struct {
	sync.Mutex
	backend logging.LeveledBackend
	level   Level
}

// Logger is the leveled logger used throughout the renderer.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module; the module name is printed with every
// record.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects every logger to w. Terminal streams get coloured output,
// anything else (files, buffers) gets plain text. The current level is kept.
func SetSink(w io.Writer) {
	format := plainFormat
	if w == os.Stdout || w == os.Stderr {
		format = colourFormat
	}

	sink.Lock()
	defer sink.Unlock()
	sink.backend = logging.AddModuleLevel(
		logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format),
	)
	sink.backend.SetLevel(backendLevels[sink.level], "")
	logging.SetBackend(sink.backend)
}

// SetLevel hides records below level. Out of range values fall back to Notice.
func SetLevel(level Level) {
	if level < Debug || level > Error {
		level = Notice
	}

	sink.Lock()
	defer sink.Unlock()
	sink.level = level
	sink.backend.SetLevel(backendLevels[level], "")
}

// printer adapts a leveled logger to core.Logger.
type printer struct {
	logger Logger
}

func (p printer) Printf(format string, args ...interface{}) {
	p.logger.Info(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// Printer exposes a leveled logger as a core.Logger that logs at info level.
func Printer(logger Logger) core.Logger {
	if logger == nil {
		return core.NopLogger()
	}
	return printer{logger: logger}
}

func init() {
	sink.level = Notice
	SetSink(os.Stdout)
}
