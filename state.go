package costsheet

// State is everything an execution statement is made of: the ledger and the
// project metadata. Metrics and display rows are derived from it on demand.
type State struct {
	Ledger Ledger
	Meta   ProjectMeta
}

// NewState returns the state of a fresh statement.
func NewState() State {
	return State{Meta: DefaultMeta()}
}

// Metrics computes the derived figures of the state.
func (s State) Metrics() Metrics { return Compute(s.Ledger, s.Meta) }

// Display returns the display sequence, with subtotal rows when grouped.
func (s State) Display(grouped bool) []DisplayRow {
	if grouped {
		return Group(s.Ledger)
	}
	return Flat(s.Ledger)
}

// WithLedger returns a copy of the state holding l.
func (s State) WithLedger(l Ledger) State {
	s.Ledger = l
	return s
}

// WithMeta returns a copy of the state holding m.
func (s State) WithMeta(m ProjectMeta) State {
	s.Meta = m
	return s
}
