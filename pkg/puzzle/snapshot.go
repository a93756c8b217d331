package puzzle

// Snapshot is a read-only copy of the observable puzzle state, safe to
// hand to other goroutines and to serialize for clients.
type Snapshot struct {
	// Angles are the eight ring angles in degrees, innermost first
	Angles []float64 `json:"angles"`
	// Selected is the selected ring index, 0 when nothing is selected
	Selected int `json:"selected"`
	// Phase is the lifecycle phase name
	Phase string `json:"phase"`
	// Won reports whether the puzzle is in its terminal won phase
	Won bool `json:"won"`
}

// Snapshot captures the current state of the puzzle.
func (p *Puzzle) Snapshot() *Snapshot {
	return &Snapshot{
		Angles:   p.Angles(),
		Selected: p.selected,
		Phase:    p.phase.String(),
		Won:      p.IsWon(),
	}
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	out := &Snapshot{
		Angles:   make([]float64, len(s.Angles)),
		Selected: s.Selected,
		Phase:    s.Phase,
		Won:      s.Won,
	}
	copy(out.Angles, s.Angles)
	return out
}
