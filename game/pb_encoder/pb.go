// Package pb encodes level state in protobuf wire format.
//
// The message layout is:
//
//	message State {
//	  int64  version         = 1;
//	  uint32 rows            = 2;
//	  uint32 cols            = 3;
//	  repeated sint32 walls  = 4 [packed = true]; // row-major
//	  Pos    player          = 5;
//	  repeated Pos revealed  = 6;
//	  uint32 lives           = 7;
//	  uint32 steps           = 8;
//	  uint32 status          = 9;
//	  uint32 traps_triggered = 10;
//	}
//	message Pos { uint32 row = 1; uint32 col = 2; }
package pb

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-trapmaze/game"
	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"google.golang.org/protobuf/encoding/protowire"
)

var _ game.Encoder = &Protobuf{}

var ErrMalformedState = errors.New("malformed level state")

const (
	fieldVersion        protowire.Number = 1
	fieldRows           protowire.Number = 2
	fieldCols           protowire.Number = 3
	fieldWalls          protowire.Number = 4
	fieldPlayer         protowire.Number = 5
	fieldRevealedTrap   protowire.Number = 6
	fieldLives          protowire.Number = 7
	fieldSteps          protowire.Number = 8
	fieldStatus         protowire.Number = 9
	fieldTrapsTriggered protowire.Number = 10

	fieldPosRow protowire.Number = 1
	fieldPosCol protowire.Number = 2
)

// ContentType is the media type served for encoded states.
const ContentType = "application/x-protobuf"

type Protobuf struct{}

// MarshalState implements game.Encoder.
func (p *Protobuf) MarshalState(s game.State) ([]byte, error) {
	if len(s.Walls) != s.Rows {
		return nil, fmt.Errorf("%w: %d wall rows for %d rows", ErrMalformedState, len(s.Walls), s.Rows)
	}

	packed := make([]byte, 0, s.Rows*s.Cols)
	for r, row := range s.Walls {
		if len(row) != s.Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells for %d cols", ErrMalformedState, r, len(row), s.Cols)
		}
		for _, cell := range row {
			packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(int64(cell)))
		}
	}

	b := make([]byte, 0, len(packed)+64)
	b = appendVarintField(b, fieldVersion, uint64(s.Version))
	b = appendVarintField(b, fieldRows, uint64(s.Rows))
	b = appendVarintField(b, fieldCols, uint64(s.Cols))
	b = protowire.AppendTag(b, fieldWalls, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	b = appendPosition(b, fieldPlayer, s.Player)
	for _, pos := range s.RevealedTraps {
		b = appendPosition(b, fieldRevealedTrap, pos)
	}
	b = appendVarintField(b, fieldLives, uint64(s.Lives))
	b = appendVarintField(b, fieldSteps, uint64(s.Steps))
	b = appendVarintField(b, fieldStatus, uint64(s.Status))
	b = appendVarintField(b, fieldTrapsTriggered, uint64(s.TrapsTriggered))
	return b, nil
}

// UnmarshalState implements game.Encoder.
func (p *Protobuf) UnmarshalState(b []byte) (game.State, error) {
	s := game.State{RevealedTraps: make([]maze.CellPosition, 0)}
	var cells []maze.CellState

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return game.State{}, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return game.State{}, protowire.ParseError(n)
			}
			b = b[n:]
			setVarintField(&s, num, v)

		case typ == protowire.BytesType && num == fieldWalls:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return game.State{}, protowire.ParseError(n)
			}
			b = b[n:]
			var err error
			if cells, err = consumeCells(v, cells); err != nil {
				return game.State{}, err
			}

		case typ == protowire.BytesType && (num == fieldPlayer || num == fieldRevealedTrap):
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return game.State{}, protowire.ParseError(n)
			}
			b = b[n:]
			pos, err := consumePosition(v)
			if err != nil {
				return game.State{}, err
			}
			if num == fieldPlayer {
				s.Player = pos
			} else {
				s.RevealedTraps = append(s.RevealedTraps, pos)
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return game.State{}, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}

	if s.Rows < 1 || s.Rows > maze.MaxDimension || s.Cols < 1 || s.Cols > maze.MaxDimension {
		return game.State{}, fmt.Errorf("%w: %dx%d grid", ErrMalformedState, s.Rows, s.Cols)
	}
	if len(cells) != s.Rows*s.Cols {
		return game.State{}, fmt.Errorf("%w: %d cells for %dx%d", ErrMalformedState, len(cells), s.Rows, s.Cols)
	}
	s.Walls = make([][]maze.CellState, s.Rows)
	for r := range s.Rows {
		s.Walls[r] = cells[r*s.Cols : (r+1)*s.Cols : (r+1)*s.Cols]
	}
	return s, nil
}

func setVarintField(s *game.State, num protowire.Number, v uint64) {
	switch num {
	case fieldVersion:
		s.Version = int64(v)
	case fieldRows:
		s.Rows = int(v)
	case fieldCols:
		s.Cols = int(v)
	case fieldLives:
		s.Lives = int(v)
	case fieldSteps:
		s.Steps = int(v)
	case fieldStatus:
		s.Status = game.Status(v)
	case fieldTrapsTriggered:
		s.TrapsTriggered = int(v)
	}
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendPosition(b []byte, num protowire.Number, pos maze.CellPosition) []byte {
	var msg []byte
	msg = appendVarintField(msg, fieldPosRow, uint64(pos.Row))
	msg = appendVarintField(msg, fieldPosCol, uint64(pos.Col))
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// consumeCells decodes a packed run of zigzag cell states.
func consumeCells(b []byte, cells []maze.CellState) ([]maze.CellState, error) {
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		cells = append(cells, maze.CellState(protowire.DecodeZigZag(v)))
	}
	return cells, nil
}

func consumePosition(b []byte) (maze.CellPosition, error) {
	var pos maze.CellPosition
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return pos, protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return pos, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return pos, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case fieldPosRow:
			pos.Row = int(v)
		case fieldPosCol:
			pos.Col = int(v)
		}
	}
	return pos, nil
}
