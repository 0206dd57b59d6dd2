package renderer

import (
	"bytes"

	"github.com/etnz/costsheet"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the project metadata and the derived metrics.
func SummaryMarkdown(s costsheet.State) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	m := s.Metrics()

	title := s.Meta.ProjectName
	if title == "" {
		title = "실행 내역서"
	}
	doc.H1(title)
	if s.Meta.Date != "" {
		doc.PlainText(s.Meta.Date)
	}

	contract := costsheet.Sentinel
	if v, ok := s.Meta.Contract(); ok {
		contract = costsheet.Won(v)
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"항목", "금액"},
		Rows: [][]string{
			{"계약금액", contract},
			{"계약용량", costsheet.FormatNumber(s.Meta.ContractCapacity)},
			{md.Bold("실행금액"), md.Bold(costsheet.Won(m.Total))},
			{"수익금액", m.Revenue.Won()},
			{"실행율", percent(m.ExecutionRate.String())},
			{"실행단가", m.UnitPrice.Won()},
		},
	})
	return doc.String()
}
