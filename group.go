package costsheet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OtherCategory is the group of rows whose process category is blank.
const OtherCategory = "기타"

// SubtotalLabel returns the item name of the subtotal row of a group.
func SubtotalLabel(group string) string { return "▶ " + group + " 소계" }

// DisplayRow is a row of the display sequence: either a line item or a
// synthetic subtotal row. Subtotal rows only exist in the display sequence,
// they are never part of a Ledger.
type DisplayRow struct {
	LineItem
	// Index is the position of the item in the ledger, -1 for a subtotal row.
	Index int
	// Group is the process category bucket the row belongs to.
	Group string
	// Subtotal is true for the synthetic row closing a group. Its only
	// meaningful values are the item name and the amount.
	Subtotal bool
	subtotal float64
}

// Amount returns the item amount, or the group sum for a subtotal row.
func (r DisplayRow) Amount() float64 {
	if r.Subtotal {
		return r.subtotal
	}
	return r.LineItem.Amount()
}

// groupOf returns the bucket of a row.
func groupOf(it LineItem) string {
	if strings.TrimSpace(it.ProcessCategory) == "" {
		return OtherCategory
	}
	return it.ProcessCategory
}

// Flat returns the display sequence of the ledger without subtotals.
func Flat(l Ledger) []DisplayRow {
	rows := make([]DisplayRow, 0, len(l.items))
	for i, it := range l.items {
		rows = append(rows, DisplayRow{LineItem: it, Index: i, Group: groupOf(it)})
	}
	return rows
}

// Group returns the display sequence of the ledger with a subtotal row after
// each process category.
//
// Groups appear in the order their category is first met scanning the rows
// top to bottom, rows keep their relative order within a group.
func Group(l Ledger) []DisplayRow {
	type bucket struct {
		name  string
		items []int
		sum   decimal.Decimal
	}
	var buckets []*bucket
	index := make(map[string]int)

	for n, it := range l.items {
		name := groupOf(it)
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, &bucket{name: name, sum: decimal.Zero})
		}
		b := buckets[i]
		b.items = append(b.items, n)
		b.sum = b.sum.Add(dec(it.Amount()))
	}

	rows := make([]DisplayRow, 0, len(l.items)+len(buckets))
	for _, b := range buckets {
		for _, n := range b.items {
			rows = append(rows, DisplayRow{LineItem: l.items[n], Index: n, Group: b.name})
		}
		rows = append(rows, DisplayRow{
			LineItem: LineItem{ItemName: SubtotalLabel(b.name)},
			Index:    -1,
			Group:    b.name,
			Subtotal: true,
			subtotal: b.sum.InexactFloat64(),
		})
	}
	return rows
}
