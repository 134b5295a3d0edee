package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piwi3910/ShapeBoard/internal/geometry"
	"github.com/piwi3910/ShapeBoard/internal/model"
)

// engLog is the sub-logger for the engine package, tagged module=engine.
var engLog zerolog.Logger = log.With().Str("module", "engine").Logger()

// CommitResult is the outcome of a proposed transform. Rejection is an
// expected state-machine outcome, not an error.
type CommitResult int

const (
	Committed CommitResult = iota
	Rejected
)

func (r CommitResult) String() string {
	if r == Committed {
		return "Committed"
	}
	return "Rejected"
}

// Session owns one puzzle's movement state: the restriction mode and the
// rotation speed configuration. Only the session mutates piece transforms,
// and only after validation, so a rejected step never leaves partial state.
type Session struct {
	puzzle     *model.Puzzle
	restricted bool // explicit toggle
	holdCount  int  // momentary holds forcing Restricted
	Rotation   RotationConfig
}

// NewSession wraps a materialized puzzle. Colors are assigned here, once,
// and stay stable for the lifetime of the session.
func NewSession(p *model.Puzzle) *Session {
	AssignColors(p.Pieces)
	return &Session{puzzle: p, Rotation: DefaultRotationConfig()}
}

// Puzzle returns the session's puzzle.
func (s *Session) Puzzle() *model.Puzzle { return s.puzzle }

// Mode returns the effective movement mode: Restricted while toggled on or
// while at least one momentary hold is active.
func (s *Session) Mode() model.MovementMode {
	if s.restricted || s.holdCount > 0 {
		return model.ModeRestricted
	}
	return model.ModeFree
}

// ToggleRestriction flips the explicit restriction toggle and returns the
// new effective mode.
func (s *Session) ToggleRestriction() model.MovementMode {
	s.restricted = !s.restricted
	engLog.Debug().Bool("restricted", s.restricted).Msg("restriction toggled")
	return s.Mode()
}

// HoldRestriction forces Restricted until the matching ReleaseRestriction.
// Holds nest; the prior toggle state is untouched.
func (s *Session) HoldRestriction() {
	s.holdCount++
}

// ReleaseRestriction ends one momentary hold.
func (s *Session) ReleaseRestriction() {
	if s.holdCount > 0 {
		s.holdCount--
	}
}

// WorldPolygon returns the board-space polygon of piece idx under its
// current transform.
func (s *Session) WorldPolygon(idx int) model.Outline {
	p := s.puzzle.Pieces[idx]
	return Apply(p.Outline, p.Transform)
}

// TryCommit validates a proposed transform for piece idx and commits it if
// allowed. In Free mode every proposal commits. In Restricted mode the
// piece's world polygon must stay inside the board outline and must not
// overlap any other piece; otherwise the current transform is kept and
// Rejected is returned.
func (s *Session) TryCommit(idx int, proposed model.Transform) CommitResult {
	if idx < 0 || idx >= len(s.puzzle.Pieces) {
		return Rejected
	}
	piece := s.puzzle.Pieces[idx]
	proposed.Rotation = NormalizeAngle(proposed.Rotation)

	if s.Mode() == model.ModeRestricted {
		world := Apply(piece.Outline, proposed)
		if !geometry.PolygonContainsPolygon(s.puzzle.Board.Outline, world) {
			return Rejected
		}
		for i, other := range s.puzzle.Pieces {
			if i == idx {
				continue
			}
			if geometry.PolygonsOverlap(world, Apply(other.Outline, other.Transform)) {
				return Rejected
			}
		}
	}

	piece.Transform = proposed
	return Committed
}

// DragStep proposes a translation by (dx, dy) mm for one discrete drag
// step. Under restriction the piece stalls at its last valid position.
func (s *Session) DragStep(idx int, dx, dy float64) CommitResult {
	if idx < 0 || idx >= len(s.puzzle.Pieces) {
		return Rejected
	}
	t := s.puzzle.Pieces[idx].Transform
	t.X += dx
	t.Y += dy
	return s.TryCommit(idx, t)
}

// RotateTick advances piece idx by one animation tick of dt seconds in
// direction dir (+1 counter-clockwise, -1 clockwise) at the active speed.
func (s *Session) RotateTick(idx int, dir, dt float64) CommitResult {
	if idx < 0 || idx >= len(s.puzzle.Pieces) {
		return Rejected
	}
	t := Advanced(s.puzzle.Pieces[idx].Transform, s.Rotation.ActiveSpeed(), dt, dir)
	return s.TryCommit(idx, t)
}

// Flip proposes mirroring piece idx.
func (s *Session) Flip(idx int) CommitResult {
	if idx < 0 || idx >= len(s.puzzle.Pieces) {
		return Rejected
	}
	t := s.puzzle.Pieces[idx].Transform
	t.Flip = !t.Flip
	return s.TryCommit(idx, t)
}

// PieceAt returns the index of the topmost piece whose world polygon
// contains pt, or -1. Boundary contact counts as a hit.
func (s *Session) PieceAt(pt model.Point2D) int {
	best := -1
	bestZ := 0
	for i := range s.puzzle.Pieces {
		if geometry.PointInPolygon(pt, s.WorldPolygon(i)) == geometry.Outside {
			continue
		}
		z := s.puzzle.Pieces[i].Z
		if best == -1 || z >= bestZ {
			best = i
			bestZ = z
		}
	}
	return best
}

// RaisePiece moves piece idx to the top of the draw order. Color indices
// are untouched.
func (s *Session) RaisePiece(idx int) error {
	if idx < 0 || idx >= len(s.puzzle.Pieces) {
		return fmt.Errorf("piece index %d out of range", idx)
	}
	maxZ := 0
	for _, p := range s.puzzle.Pieces {
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	s.puzzle.Pieces[idx].Z = maxZ + 1
	return nil
}
