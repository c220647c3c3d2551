package bubbles

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger is a leveled zap logger. The level can be switched at
// runtime through SetDebug.
type DefaultLogger struct {
	level zap.AtomicLevel
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewDefaultLogger writes human readable lines to output, a zap sink path
// such as "stdout" or a file name.
func NewDefaultLogger(prefix string, debug bool, output string) *DefaultLogger {
	return newZapLogger(prefix, debug, "console", output)
}

// NewJSONLogger writes one JSON object per line, for log shippers.
func NewJSONLogger(prefix string, debug bool, output string) *DefaultLogger {
	return newZapLogger(prefix, debug, "json", output)
}

func newZapLogger(prefix string, debug bool, encoding string, output string) *DefaultLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if encoding == "json" {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	config := zap.Config{
		Level:            level,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}
	base, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return wrapZap(base.Named(prefix), level)
}

// NewLoggerWithCore wraps an existing zap core, mostly for tests.
func NewLoggerWithCore(core zapcore.Core, level zap.AtomicLevel) *DefaultLogger {
	return wrapZap(zap.New(core, zap.AddCallerSkip(1)), level)
}

func wrapZap(base *zap.Logger, level zap.AtomicLevel) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		base:  base,
		sugar: base.Sugar(),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered entries.
func (l *DefaultLogger) Sync() error {
	return l.base.Sync()
}

// LoggingModule installs a default logger as a resource. Output is a zap
// sink path and defaults to stdout.
type LoggingModule struct {
	Prefix string
	Debug  bool
	JSON   bool
	Output string
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	output := m.Output
	if output == "" {
		output = "stdout"
	}
	var logger *DefaultLogger
	if m.JSON {
		logger = NewJSONLogger(m.Prefix, m.Debug, output)
	} else {
		logger = NewDefaultLogger(m.Prefix, m.Debug, output)
	}
	app.addResources(logger)
	cmd.OnTeardown(func() {
		_ = logger.Sync()
	})
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
