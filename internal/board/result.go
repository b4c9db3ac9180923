package board

// Slot identifies a position on the board: a column and an index within
// that column's card order.
type Slot struct {
	ColumnID int64
	Index    int
}

// MoveRequest is the intent emitted by a completed move gesture. To is
// nil when the gesture was cancelled before a drop.
type MoveRequest struct {
	CardID int64
	From   Slot
	To     *Slot
}

// Outcome tags the result of a move so callers can assert on what
// happened instead of diffing state.
type Outcome int

const (
	// OutcomeNoop: nothing was mutated (cancelled gesture, same-slot
	// drop, or a rejected request — Err says which).
	OutcomeNoop Outcome = iota
	// OutcomeApplied: the optimistic mutation stands and the server
	// acknowledged the shift.
	OutcomeApplied
	// OutcomeRolledBack: the server rejected the shift and local state
	// was restored to the pre-move snapshot. Err carries the reason.
	OutcomeRolledBack
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeRolledBack:
		return "rolled back"
	}
	return "noop"
}

type MoveResult struct {
	Outcome Outcome
	Err     error
}
