package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParameters(t *testing.T) {
	for _, test := range []struct {
		args  []string
		level zapcore.Level
		tp    LoggerType
		fail  bool
	}{
		{nil, zapcore.InfoLevel, LoggerText, false},
		{[]string{"--log-level", "debug", "--log-type", "json"}, zapcore.DebugLevel, LoggerJSON, false},
		{[]string{"--log-level=WARN"}, zapcore.WarnLevel, LoggerText, false},
		{[]string{"--log-level", "loud"}, 0, 0, true},
		{[]string{"--log-type", "pretty"}, 0, 0, true},
		{[]string{"--log-filter", "debug:ledger -*:api"}, zapcore.InfoLevel, LoggerText, false},
	} {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		var p Parameters
		p.Initialize(fs)
		require.NoError(t, fs.Parse(test.args))
		err := p.Parse()
		if test.fail {
			assert.Error(t, err, test.args)
			continue
		}
		require.NoError(t, err, test.args)
		assert.Equal(t, test.level, p.Level)
		assert.Equal(t, test.tp, p.Type)
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(Parameters{Level: zapcore.InfoLevel, Type: LoggerJSON}, zapcore.AddSync(&buf))
	logger = Namespace(logger, "ledger")
	logger.Debug("hidden")
	logger.Info("Asset issued", zap.Uint64("id", 1), Type(errors.New("x")))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Asset issued", entry["msg"])
	assert.Equal(t, "ledger", entry["logger"])
	assert.EqualValues(t, 1, entry["id"])
	assert.Equal(t, "*errors.fundamental", entry["type"])
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(Parameters{Level: zapcore.DebugLevel, Type: LoggerText}, zapcore.AddSync(&buf))
	logger.Debug("Batch issued", zap.String("recipient", "3N"))
	assert.Contains(t, buf.String(), "Batch issued")
	assert.Contains(t, buf.String(), `"recipient": "3N"`)
}

func TestFilteredLogger(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var p Parameters
	p.Initialize(fs)
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--log-type", "json", "--log-filter", "*:ledger"}))
	require.NoError(t, p.Parse())
	require.NotNil(t, p.Filter)

	var buf bytes.Buffer
	logger := newLogger(p, zapcore.AddSync(&buf))
	Namespace(logger, "api").Info("ServedHttpRequest")
	Namespace(logger, "ledger").Info("Asset issued")
	require.NoError(t, logger.Sync())
	assert.NotContains(t, buf.String(), "ServedHttpRequest")
	assert.Contains(t, buf.String(), "Asset issued")
}
