package logger

import (
	"bytes"
	"testing"

	"github.com/beka-birhanu/vinom-trapmaze/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("MAZE", config.ColorCyan, &buf)
	require.NoError(t, err)

	l.Info("generated maze")
	l.Warning("trap policy none")
	l.Error("redis down")

	out := buf.String()
	assert.Contains(t, out, "[MAZE]")
	assert.Contains(t, out, "[INFO]"+config.LogColorReset+" generated maze")
	assert.Contains(t, out, "[WARNING]"+config.LogColorReset+" trap policy none")
	assert.Contains(t, out, "[ERROR]"+config.LogColorReset+" redis down")
}

func TestNewRequiresWriter(t *testing.T) {
	_, err := New("MAZE", config.ColorCyan, nil)
	assert.ErrorIs(t, err, ErrNilWriter)
}
