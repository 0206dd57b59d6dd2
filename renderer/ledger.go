package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/costsheet"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders the item table. The first two columns are the ledger
// index of the row, used to edit or insert even in a grouped listing, and the
// row id, used to remove.
func LedgerMarkdown(s costsheet.State, grouped bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if s.Meta.ProjectName != "" {
		doc.H1(s.Meta.ProjectName)
	}
	if s.Ledger.Len() == 0 {
		doc.PlainText("No items.")
		return doc.String()
	}

	header := []string{"#", "ID"}
	alignment := []md.TableAlignment{md.AlignRight, md.AlignRight}
	for i, f := range costsheet.Fields() {
		if i == int(costsheet.FieldVendor) {
			header = append(header, costsheet.AmountLabel)
			alignment = append(alignment, md.AlignRight)
		}
		header = append(header, f.Label())
		if f.Numeric() {
			alignment = append(alignment, md.AlignRight)
		} else {
			alignment = append(alignment, md.AlignLeft)
		}
	}

	var rows [][]string
	for _, r := range s.Display(grouped) {
		if r.Subtotal {
			rows = append(rows, []string{"", "", "", md.Bold(cell(r.ItemName)), "", "", "", "", md.Bold(costsheet.FormatNumber(r.Amount())), "", ""})
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.ID),
			cell(r.ProcessCategory),
			cell(r.ItemName),
			cell(r.Spec),
			cell(r.Unit),
			costsheet.FormatNumber(r.Quantity),
			costsheet.FormatNumber(r.UnitPrice),
			costsheet.FormatNumber(r.Amount()),
			cell(r.Vendor),
			cell(r.Note),
		})
	}
	rows = append(rows, []string{"", "", "", md.Bold("합계"), "", "", "", "", md.Bold(costsheet.FormatNumber(s.Ledger.Total())), "", ""})

	doc.Table(md.TableSet{Header: header, Rows: rows, Alignment: alignment})
	return doc.String()
}
