package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestEngineFlags(t *testing.T) {
	flags := engineFlags()

	findString := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("db is required", func(t *testing.T) {
		f := findString("db")
		require.NotNil(t, f)
		assert.True(t, f.Required)
		assert.Contains(t, f.Aliases, "d")
	})

	t.Run("qdrant is optional", func(t *testing.T) {
		f := findString("qdrant")
		require.NotNil(t, f)
		assert.False(t, f.Required)
		assert.Empty(t, f.Value)
	})

	t.Run("ai-host has a local default", func(t *testing.T) {
		f := findString("ai-host")
		require.NotNil(t, f)
		assert.Equal(t, "http://localhost:11434/v1", f.Value)
	})

	t.Run("collection defaults to candidates", func(t *testing.T) {
		f := findString("collection")
		require.NotNil(t, f)
		assert.Equal(t, "candidates", f.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("alias -l works", func(t *testing.T) {
		err := newApp().Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}
