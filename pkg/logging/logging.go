// Package logging builds the process logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// NewLogger creates a logger writing to the standard output and replaces the zap globals with it.
// Call the returned function to restore the globals.
func NewLogger(params Parameters) (*zap.Logger, func()) {
	logger := newLogger(params, zapcore.Lock(os.Stdout))
	restore := zap.ReplaceGlobals(logger)
	return logger, restore
}

func newLogger(params Parameters, ws zapcore.WriteSyncer) *zap.Logger {
	al := zap.NewAtomicLevelAt(params.Level)
	var enc zapcore.Encoder
	switch params.Type {
	case LoggerText:
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	case LoggerJSON:
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	default:
		panic(fmt.Sprintf("unsupported logger type %d", params.Type))
	}
	core := zapcore.NewCore(enc, ws, al)
	if params.Filter != nil {
		core = zapfilter.NewFilteringCore(core, params.Filter)
	}
	return zap.New(core)
}

// Namespace returns a child logger named after the component. Log filter rules match this name.
func Namespace(logger *zap.Logger, name string) *zap.Logger {
	return logger.Named(name)
}

type typenamePrinter struct{ v any }

func (t typenamePrinter) String() string {
	return fmt.Sprintf("%T", t.v)
}

// Type returns a field that contains the type name of the value.
func Type(value any) zap.Field {
	return zap.Stringer("type", typenamePrinter{v: value})
}
