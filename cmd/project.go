package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costsheet"
	"github.com/etnz/costsheet/date"
	"github.com/etnz/costsheet/renderer"
	"github.com/google/subcommands"
	"github.com/natefinch/atomic"
)

type projectCmd struct {
	values map[costsheet.MetaField]*string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "edit the project header" }
func (*projectCmd) Usage() string {
	return `cst project [-name <공사명>] [-date <작성일>] [-contract <계약금액>] [-capacity <계약용량>] [-revenue <수익금액>]

  Sets the fields of the project header. Only the flags given are changed.
  Dates written "2025-04-30" or "2025년 4월 30일" are normalized to
  "2025년 04월 30일", any other text is kept as is. An empty -revenue
  returns to the revenue derived from the contract amount.
`
}

var metaFlagNames = map[costsheet.MetaField]string{
	costsheet.MetaProjectName:      "name",
	costsheet.MetaDate:             "date",
	costsheet.MetaContractAmount:   "contract",
	costsheet.MetaContractCapacity: "capacity",
	costsheet.MetaRevenueAmount:    "revenue",
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	c.values = make(map[costsheet.MetaField]*string)
	for _, field := range costsheet.MetaFields() {
		c.values[field] = f.String(metaFlagNames[field], "", fmt.Sprintf("%s (%s)", field.Label(), field))
	}
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	// dates are display text: normalize the ones we understand, keep the others.
	if d, err := date.Parse(*c.values[costsheet.MetaDate]); set["date"] && err == nil {
		*c.values[costsheet.MetaDate] = d.Korean()
	}

	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		for _, field := range costsheet.MetaFields() {
			if !set[metaFlagNames[field]] {
				continue
			}
			if err := ws.session.SetMeta(ctx, field, *c.values[field]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		printMarkdown(renderer.SummaryMarkdown(ws.session.State()))
		return subcommands.ExitSuccess
	})
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the project figures" }
func (*summaryCmd) Usage() string {
	return `cst summary

  Displays the contract figures and the metrics derived from the line items:
  total, revenue, execution rate and unit price.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		printMarkdown(renderer.SummaryMarkdown(ws.session.State()))
		return subcommands.ExitSuccess
	})
}

type reportCmd struct {
	html   bool
	output string
}

// DocumentFileName is the default name of the HTML document.
const DocumentFileName = "실행내역서.html"

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate the printable statement" }
func (*reportCmd) Usage() string {
	return `cst report [-html] [-o <file>]

  Generates the statement document: title, project information, item table
  and disclaimer. It is printed as markdown, or written as an HTML page with
  -html (to ` + DocumentFileName + ` unless -o is given).
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.html, "html", false, "Write an HTML page instead of printing markdown.")
	f.StringVar(&c.output, "o", "", "Output file. Use - for stdout.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		doc := costsheet.NewDocument(ws.session.State())
		md := renderer.RenderDocument(doc)
		if !c.html {
			if c.output == "" || c.output == "-" {
				printMarkdown(md)
				return subcommands.ExitSuccess
			}
			return writeOutput(c.output, []byte(md))
		}

		page, err := renderer.HTMLPage(doc.Title, md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		output := c.output
		if output == "" {
			output = DocumentFileName
		}
		return writeOutput(output, []byte(page))
	})
}

// writeOutput replaces file with data, or prints it when file is "-".
func writeOutput(file string, data []byte) subcommands.ExitStatus {
	if file == "-" {
		os.Stdout.Write(data)
		return subcommands.ExitSuccess
	}
	if err := atomic.WriteFile(file, bytes.NewReader(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Written %s\n", file)
	return subcommands.ExitSuccess
}
