package logging

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type Parameters struct {
	Level zapcore.Level
	Type  LoggerType
	// Filter selects entries by level and logger name, nil passes everything.
	Filter zapfilter.FilterFunc

	flagLogLevel   string
	flagLoggerType string
	flagLogFilter  string
}

// Initialize adds logging command line parameters to the flag set.
func (p *Parameters) Initialize(fs *pflag.FlagSet) {
	fs.StringVar(&p.flagLogLevel, "log-level", "info",
		"Set the logging level. Supported values: debug, info, warn, error, fatal.")
	fs.StringVar(&p.flagLoggerType, "log-type", "text",
		"Set the logger output format. Supported types: text, json.")
	fs.StringVar(&p.flagLogFilter, "log-filter", "*",
		"Filter log entries by level and component, for example 'info:* debug:ledger -*:api'.")
}

// Parse parses the command line parameters for logging.
func (p *Parameters) Parse() error {
	if err := p.Level.UnmarshalText([]byte(p.flagLogLevel)); err != nil {
		return errors.Wrap(err, "failed to parse logger parameters")
	}
	if err := p.Type.UnmarshalText([]byte(p.flagLoggerType)); err != nil {
		return errors.Wrap(err, "failed to parse logger parameters")
	}
	if p.flagLogFilter != "" && p.flagLogFilter != "*" {
		f, err := zapfilter.ParseRules(p.flagLogFilter)
		if err != nil {
			return errors.Wrap(err, "failed to parse logger parameters")
		}
		p.Filter = f
	}
	return nil
}

func (p *Parameters) String() string {
	return fmt.Sprintf("{Level: %s, Type: %s, Filter: %s}", p.Level, p.Type, p.flagLogFilter)
}
