package sheet

import (
	"fmt"
	"io"
	"math"

	"github.com/etnz/costsheet"
	"github.com/xuri/excelize/v2"
)

// Options tune the export.
type Options struct {
	// Grouped inserts a subtotal row after each process category.
	Grouped bool
}

const (
	intFormat  = "#,##0"
	fracFormat = "#,##0.###"
)

// styles are the cell styles of an exported workbook.
type styles struct {
	title, header, integer, fraction int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  styles
		err error
	)
	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9D9D9"}},
	}); err != nil {
		return st, err
	}
	integer, fraction := intFormat, fracFormat
	if st.integer, err = f.NewStyle(&excelize.Style{CustomNumFmt: &integer}); err != nil {
		return st, err
	}
	if st.fraction, err = f.NewStyle(&excelize.Style{CustomNumFmt: &fraction}); err != nil {
		return st, err
	}
	return st, nil
}

// numberStyle picks the format showing n without losing its fraction.
func (st styles) numberStyle(n float64) int {
	if n != math.Trunc(n) {
		return st.fraction
	}
	return st.integer
}

// writer fills the statement sheet, keeping the first error.
type writer struct {
	f   *excelize.File
	st  styles
	err error
}

func (w *writer) cell(col string, row int) string { return fmt.Sprintf("%s%d", col, row) }

func (w *writer) text(col string, row int, v string) {
	if w.err != nil || v == "" {
		return
	}
	w.err = w.f.SetCellStr(SheetName, w.cell(col, row), v)
}

func (w *writer) number(col string, row int, n float64) {
	if w.err != nil {
		return
	}
	cell := w.cell(col, row)
	if w.err = w.f.SetCellFloat(SheetName, cell, n, -1, 64); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(SheetName, cell, cell, w.st.numberStyle(n))
}

// amount writes a text amount as a number when it parses as one.
func (w *writer) amount(col string, row int, raw string) {
	if n, err := parseCell(raw); err == nil {
		w.number(col, row, n)
		return
	}
	w.text(col, row, raw)
}

func (w *writer) metric(col string, row int, m costsheet.Metric) {
	if v, ok := m.Value(); ok {
		w.number(col, row, v)
		return
	}
	w.text(col, row, costsheet.Sentinel)
}

// Export builds the workbook of a state.
func Export(s costsheet.State, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w := &writer{f: f, st: st}
	m := s.Metrics()

	w.text("A", rowTitle, Title)
	if w.err == nil {
		w.err = f.SetCellStyle(SheetName, "A1", "A1", st.title)
	}

	w.text("A", rowName, costsheet.MetaProjectName.Label())
	w.text("B", rowName, s.Meta.ProjectName)
	w.text("E", rowName, costsheet.MetaDate.Label())
	w.text("F", rowName, s.Meta.Date)

	w.text("A", rowAmount, costsheet.MetaContractAmount.Label())
	w.amount("B", rowAmount, s.Meta.ContractAmount)
	w.text("E", rowAmount, costsheet.MetaContractCapacity.Label())
	w.number("F", rowAmount, s.Meta.ContractCapacity)

	w.text("A", rowProfit, costsheet.MetaRevenueAmount.Label())
	w.metric("B", rowProfit, m.Revenue)
	w.text("E", rowProfit, TotalLabel)
	w.number("F", rowProfit, m.Total)

	for i, h := range headers() {
		w.text(columns[i], rowHeader, h)
	}
	if w.err == nil {
		w.err = f.SetCellStyle(SheetName, "A6", "I6", st.header)
	}

	row := rowHeader + 1
	for _, r := range s.Display(opts.Grouped) {
		if r.Subtotal {
			w.text(columns[colItem], row, r.ItemName)
			w.number(columns[colAmount], row, r.Amount())
			row++
			continue
		}
		w.text(columns[colCategory], row, r.ProcessCategory)
		w.text(columns[colItem], row, r.ItemName)
		w.text(columns[colSpec], row, r.Spec)
		w.text(columns[colUnit], row, r.Unit)
		w.number(columns[colQuantity], row, r.Quantity)
		w.number(columns[colUnitPrice], row, r.UnitPrice)
		w.number(columns[colAmount], row, r.Amount())
		w.text(columns[colVendor], row, r.Vendor)
		w.text(columns[colNote], row, r.Note)
		row++
	}
	w.number(columns[colAmount], row, m.Total)

	for col, width := range map[string]float64{"A": 12, "B": 24, "C": 14, "D": 8, "E": 12, "F": 14, "G": 16, "H": 14, "I": 24} {
		if w.err == nil {
			w.err = f.SetColWidth(SheetName, col, col, width)
		}
	}
	if w.err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cannot build workbook: %w", w.err)
	}
	return f, nil
}

// Write exports a state as an xlsx workbook to out.
func Write(out io.Writer, s costsheet.State, opts Options) error {
	f, err := Export(s, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

// headers returns the header row of the item table.
func headers() []string {
	h := make([]string, 0, len(columns))
	for _, f := range costsheet.Fields()[:colAmount] {
		h = append(h, f.Label())
	}
	h = append(h, costsheet.AmountLabel)
	for _, f := range costsheet.Fields()[colAmount:] {
		h = append(h, f.Label())
	}
	return h
}
