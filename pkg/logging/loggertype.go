package logging

import (
	"strings"

	"github.com/pkg/errors"
)

// LoggerType is a type of logger output.
// Possible types:
//   - LoggerText: zap console encoder with the development encoder config.
//   - LoggerJSON: zap JSON encoder with the production encoder config.
type LoggerType int

const (
	LoggerText LoggerType = iota
	LoggerJSON
)

func (t LoggerType) String() string {
	switch t {
	case LoggerText:
		return "text"
	case LoggerJSON:
		return "json"
	default:
		return "unknown"
	}
}

func (t LoggerType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *LoggerType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "text", "console":
		*t = LoggerText
	case "json":
		*t = LoggerJSON
	default:
		return errors.Errorf("unsupported logger type '%s'", string(text))
	}
	return nil
}
