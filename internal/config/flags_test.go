package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, opts)
	return fs
}

// TestBindFlags_Defaults verifies the values bound when no flag is passed.
func TestBindFlags_Defaults(t *testing.T) {
	var opts Options
	fs := newTestFlagSet(&opts)

	require.NoError(t, fs.Parse(nil))

	assert.Empty(t, opts.Files)
	assert.Equal(t, DefaultEnvPrefix, opts.EnvPrefix)
	assert.False(t, opts.Strict)
	assert.Equal(t, DefaultMaxInstances, opts.MaxInstances)
	assert.False(t, opts.DisableEnv)
}

func TestBindFlags_Parse(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		assert func(t *testing.T, opts Options)
	}{
		{
			name: "single config file",
			args: []string{"--config", "app.yaml"},
			assert: func(t *testing.T, opts Options) {
				assert.Equal(t, []string{"app.yaml"}, opts.Files)
			},
		},
		{
			name: "repeated short flag keeps order",
			args: []string{"-c", "base.yaml", "-c", "local.toml"},
			assert: func(t *testing.T, opts Options) {
				assert.Equal(t, []string{"base.yaml", "local.toml"}, opts.Files)
			},
		},
		{
			name: "comma is part of the path",
			args: []string{"-c", "a,b.json"},
			assert: func(t *testing.T, opts Options) {
				assert.Equal(t, []string{"a,b.json"}, opts.Files)
			},
		},
		{
			name: "env prefix",
			args: []string{"--env-prefix", "SVC"},
			assert: func(t *testing.T, opts Options) {
				assert.Equal(t, "SVC", opts.EnvPrefix)
			},
		},
		{
			name: "strict and bound",
			args: []string{"--strict", "--max-instances=8"},
			assert: func(t *testing.T, opts Options) {
				assert.True(t, opts.Strict)
				assert.Equal(t, 8, opts.MaxInstances)
			},
		},
		{
			name: "no env",
			args: []string{"--no-env"},
			assert: func(t *testing.T, opts Options) {
				assert.True(t, opts.DisableEnv)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts Options
			fs := newTestFlagSet(&opts)

			require.NoError(t, fs.Parse(tt.args))
			tt.assert(t, opts)
		})
	}
}

func TestBindFlags_InvalidMaxInstances(t *testing.T) {
	var opts Options
	fs := newTestFlagSet(&opts)

	err := fs.Parse([]string{"--max-instances", "many"})
	assert.Error(t, err)
}
