package costsheet

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Ledger is the ordered list of line items of an execution statement.
//
// A Ledger is a value: every operation returns a new snapshot and leaves the
// receiver untouched, so a snapshot handed to a reader never changes under it.
// Order is meaningful, it is the display order and the order in which process
// categories are discovered for grouping.
type Ledger struct {
	items []LineItem
}

// NewLedger creates a ledger holding a copy of items, ids are kept as given.
func NewLedger(items ...LineItem) Ledger {
	return Ledger{items: slices.Clone(items)}
}

// Len returns the number of rows.
func (l Ledger) Len() int { return len(l.items) }

// At returns the row at index i.
func (l Ledger) At(i int) (LineItem, error) {
	if i < 0 || i >= len(l.items) {
		return LineItem{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, len(l.items))
	}
	return l.items[i], nil
}

// Items returns a copy of the rows.
func (l Ledger) Items() []LineItem {
	if l.items == nil {
		return []LineItem{}
	}
	return slices.Clone(l.items)
}

// All iterates over the rows with their index.
func (l Ledger) All() iter.Seq2[int, LineItem] {
	return func(yield func(int, LineItem) bool) {
		for i, it := range l.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Find returns the row with the given id and its index.
func (l Ledger) Find(id int) (LineItem, int, bool) {
	i := slices.IndexFunc(l.items, func(it LineItem) bool { return it.ID == id })
	if i < 0 {
		return LineItem{}, -1, false
	}
	return l.items[i], i, true
}

// NextID returns the id the next added row receives: one more than the
// largest id, or 1 for an empty ledger.
func (l Ledger) NextID() int {
	next := 1
	for _, it := range l.items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}

// Add appends item as a new row. Its id is assigned by the ledger.
func (l Ledger) Add(item LineItem) Ledger {
	item.ID = l.NextID()
	items := make([]LineItem, 0, len(l.items)+1)
	items = append(items, l.items...)
	return Ledger{items: append(items, item)}
}

// Insert adds item as a new row immediately after the row at index after.
// An index of -1 inserts at the front.
func (l Ledger) Insert(item LineItem, after int) (Ledger, error) {
	if after < -1 || after >= len(l.items) {
		return l, fmt.Errorf("%w: cannot insert after %d in a ledger of %d rows", ErrOutOfRange, after, len(l.items))
	}
	item.ID = l.NextID()
	items := make([]LineItem, 0, len(l.items)+1)
	items = append(items, l.items[:after+1]...)
	items = append(items, item)
	items = append(items, l.items[after+1:]...)
	return Ledger{items: items}, nil
}

// Update sets one field of the row at index from raw input.
func (l Ledger) Update(index int, f Field, raw string) (Ledger, error) {
	it, err := l.At(index)
	if err != nil {
		return l, err
	}
	it, err = it.With(f, raw)
	if err != nil {
		return l, err
	}
	items := slices.Clone(l.items)
	items[index] = it
	return Ledger{items: items}, nil
}

// Remove deletes the row with the given id. Removing an unknown id is a no-op.
func (l Ledger) Remove(id int) Ledger {
	if _, _, ok := l.Find(id); !ok {
		return l
	}
	items := make([]LineItem, 0, len(l.items)-1)
	for _, it := range l.items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return Ledger{items: items}
}

// Renumber reassigns ids sequentially from 1, in row order.
func (l Ledger) Renumber() Ledger {
	items := slices.Clone(l.items)
	for i := range items {
		items[i].ID = i + 1
	}
	return Ledger{items: items}
}

// Equal reports whether both ledgers hold the same rows in the same order.
func (l Ledger) Equal(o Ledger) bool {
	return slices.Equal(l.items, o.items)
}

// MarshalJSON encodes the ledger as an array of rows.
func (l Ledger) MarshalJSON() ([]byte, error) {
	rows := make([]LineItem, len(l.items))
	for i, it := range l.items {
		rows[i] = it.sanitized()
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes an array of rows, keeping their ids.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var rows []LineItem
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	*l = Ledger{items: rows}
	return nil
}
