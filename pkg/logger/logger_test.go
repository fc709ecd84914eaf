package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init("terminal", "debug", false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("terminal", "warn", true)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	Init("terminal", "bogus", false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestWith(t *testing.T) {
	Init("terminal", "info", false)
	child := With().Str("component", "quotes").Logger()
	assert.NotNil(t, child)
}
