package pb

import (
	"testing"

	"github.com/beka-birhanu/vinom-trapmaze/game"
	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func playedLevelState(t *testing.T) game.State {
	t.Helper()
	res, err := maze.Generate(maze.Options{Dimensions: maze.DefaultDimensions}, maze.FirstChoice{})
	require.NoError(t, err)
	res.Traps = append(res.Traps, maze.Trap{Position: res.Path[1]})

	l, err := game.NewLevel(res, game.DefaultLives)
	require.NoError(t, err)
	ev, err := l.Move(directionTo(res.Path[0], res.Path[1]))
	require.NoError(t, err)
	require.Equal(t, game.EventTrapTriggered, ev.Kind)
	return l.Snapshot()
}

func directionTo(from, to maze.CellPosition) string {
	for name, d := range maze.Directions {
		if from.Add(d) == to {
			return name
		}
	}
	return ""
}

func TestProtobufStateRoundTrip(t *testing.T) {
	state := playedLevelState(t)
	enc := &Protobuf{}

	b, err := enc.MarshalState(state)
	require.NoError(t, err)

	decoded, err := enc.UnmarshalState(b)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
	assert.Len(t, decoded.RevealedTraps, 1)
	assert.Equal(t, maze.Exit, decoded.Walls[17][27])
}

func TestProtobufSkipsUnknownFields(t *testing.T) {
	state := playedLevelState(t)
	enc := &Protobuf{}

	b, err := enc.MarshalState(state)
	require.NoError(t, err)
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future field")

	decoded, err := enc.UnmarshalState(b)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestProtobufRejectsMalformedInput(t *testing.T) {
	enc := &Protobuf{}

	t.Run("truncated", func(t *testing.T) {
		b, err := enc.MarshalState(playedLevelState(t))
		require.NoError(t, err)
		_, err = enc.UnmarshalState(b[:len(b)/2])
		assert.Error(t, err)
	})

	t.Run("cell count mismatch", func(t *testing.T) {
		var b []byte
		b = appendVarintField(b, fieldRows, 3)
		b = appendVarintField(b, fieldCols, 3)
		_, err := enc.UnmarshalState(b)
		assert.ErrorIs(t, err, ErrMalformedState)
	})

	t.Run("grid size out of range", func(t *testing.T) {
		tests := []struct {
			name       string
			rows, cols uint64
		}{
			{"rows wrap negative with no cols", 1<<64 - 1, 0},
			{"product overflows to zero", 1 << 62, 4},
			{"zero rows", 0, 5},
			{"above max dimension", maze.MaxDimension + 2, 5},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var b []byte
				b = appendVarintField(b, fieldRows, tt.rows)
				b = appendVarintField(b, fieldCols, tt.cols)
				b = protowire.AppendTag(b, fieldWalls, protowire.BytesType)
				b = protowire.AppendBytes(b, nil)

				assert.NotPanics(t, func() {
					_, err := enc.UnmarshalState(b)
					assert.ErrorIs(t, err, ErrMalformedState)
				})
			})
		}
	})

	t.Run("ragged walls", func(t *testing.T) {
		_, err := enc.MarshalState(game.State{
			Rows:  2,
			Cols:  2,
			Walls: [][]maze.CellState{{maze.Wall, maze.Wall}, {maze.Wall}},
		})
		assert.ErrorIs(t, err, ErrMalformedState)
	})
}
