package meta

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rure/flags"
)

// TestDefaultConfigValues verifies DefaultConfig returns expected field values.
func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()

	assert.True(t, c.EnablePrefilter)
	assert.True(t, c.EnableDFA)
	assert.Equal(t, 10_000, c.MaxDFAStates)
	assert.Equal(t, 5, c.MaxDFACacheClears)
	assert.Equal(t, 1_000, c.DeterminizationLimit)
	assert.True(t, c.EnableOnePass)
	assert.Equal(t, 4096, c.MaxOnePassStates)
	assert.True(t, c.EnableBacktracker)
	assert.Equal(t, 256*1024*8, c.MaxBacktrackVisited)
	assert.Equal(t, 1<<20, c.MaxStates)
	assert.Equal(t, 1000, c.MaxRecursionDepth)
	assert.Equal(t, 64, c.MaxLiterals)
	assert.Equal(t, 16, c.MaxLiteralLen)
	assert.Equal(t, 10, c.MaxClassSize)
	assert.Equal(t, 1, c.MinLiteralLen)
	assert.Nil(t, c.Logger)
	assert.NoError(t, c.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"default", func(*Config) {}, ""},
		{"dfa states too small", func(c *Config) { c.MaxDFAStates = 1 }, "MaxDFAStates"},
		{"dfa states too large", func(c *Config) { c.MaxDFAStates = 1_000_001 }, "MaxDFAStates"},
		{"dfa clears negative", func(c *Config) { c.MaxDFACacheClears = -1 }, "MaxDFACacheClears"},
		{"determinization limit zero", func(c *Config) { c.DeterminizationLimit = 0 }, "DeterminizationLimit"},
		{"dfa limits ignored when disabled", func(c *Config) {
			c.EnableDFA = false
			c.MaxDFAStates = 0
			c.DeterminizationLimit = 0
		}, ""},
		{"onepass states zero", func(c *Config) { c.MaxOnePassStates = 0 }, "MaxOnePassStates"},
		{"onepass states too large", func(c *Config) { c.MaxOnePassStates = 1 << 21 }, "MaxOnePassStates"},
		{"onepass limit ignored when disabled", func(c *Config) {
			c.EnableOnePass = false
			c.MaxOnePassStates = 0
		}, ""},
		{"visited zero", func(c *Config) { c.MaxBacktrackVisited = 0 }, "MaxBacktrackVisited"},
		{"visited too large", func(c *Config) { c.MaxBacktrackVisited = 1<<30 + 1 }, "MaxBacktrackVisited"},
		{"visited ignored when disabled", func(c *Config) {
			c.EnableBacktracker = false
			c.MaxBacktrackVisited = 0
		}, ""},
		{"states too small", func(c *Config) { c.MaxStates = 15 }, "MaxStates"},
		{"states minimum", func(c *Config) { c.MaxStates = 16 }, ""},
		{"states too large", func(c *Config) { c.MaxStates = 1<<24 + 1 }, "MaxStates"},
		{"depth too small", func(c *Config) { c.MaxRecursionDepth = 9 }, "MaxRecursionDepth"},
		{"depth too large", func(c *Config) { c.MaxRecursionDepth = 10_001 }, "MaxRecursionDepth"},
		{"literals zero", func(c *Config) { c.MaxLiterals = 0 }, "MaxLiterals"},
		{"literal len too large", func(c *Config) { c.MaxLiteralLen = 257 }, "MaxLiteralLen"},
		{"class size zero", func(c *Config) { c.MaxClassSize = 0 }, "MaxClassSize"},
		{"min literal len zero", func(c *Config) { c.MinLiteralLen = 0 }, "MinLiteralLen"},
		{"literal limits ignored when prefilter disabled", func(c *Config) {
			c.EnablePrefilter = false
			c.MaxLiterals = 0
			c.MinLiteralLen = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, tt.wantField, cerr.Field)
			assert.Contains(t, err.Error(), "rure: invalid config: "+tt.wantField)
		})
	}
}

func TestCompileRejectsInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.MaxStates = 0
	_, err := Compile("a", flags.Default, c)
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "MaxStates", cerr.Field)
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultConfig()
	c.Logger = log.New(&buf, "", 0)

	_, err := Compile("hello|world", flags.Default, c)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[rure] ")
	assert.Contains(t, out, `pattern="hello|world"`)
	assert.Contains(t, out, "strategy=Prefilter")
	assert.Contains(t, out, "prefilter=memchr2")
	assert.Contains(t, out, "dfa=true")
	assert.Contains(t, out, "onepass=true")
}

func TestConfigNilLoggerIsSilent(t *testing.T) {
	c := DefaultConfig()
	assert.NotPanics(t, func() { c.logf("x=%d", 1) })
}
