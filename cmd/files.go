package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/costsheet"
	"github.com/etnz/costsheet/share"
	"github.com/etnz/costsheet/sheet"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output  string
	grouped bool
	json    bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the statement to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `cst export [-o <file>] [-group] [-json]

  Writes the statement to an xlsx workbook (` + sheet.FileName + ` unless -o is
  given). With -group, subtotal rows are written after each process category.
  With -json, the state record is written instead of a workbook.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Use - for stdout.")
	f.BoolVar(&c.grouped, "group", false, "Write subtotal rows.")
	f.BoolVar(&c.json, "json", false, "Write the JSON state record.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		s := ws.session.State()
		output := c.output
		var buf bytes.Buffer
		if c.json {
			if output == "" {
				output = "-"
			}
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			if err := enc.Encode(s); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		} else {
			if output == "" {
				output = sheet.FileName
			}
			if err := sheet.Write(&buf, s, sheet.Options{Grouped: c.grouped}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		return writeOutput(output, buf.Bytes())
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the statement with a spreadsheet" }
func (*importCmd) Usage() string {
	return `cst import <file>

  Replaces the statement with the content of an xlsx workbook, or of a JSON
  state record when the file name ends in .json. Nothing changes if the file
  cannot be read.
`
}

func (*importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import takes exactly one file.")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	decode := costsheet.Decoder(sheet.Decode)
	if strings.EqualFold(filepath.Ext(name), ".json") {
		decode = costsheet.DecodeState
	}

	file, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		if err := ws.session.Import(ctx, file, decode); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", name, err)
			if errors.Is(err, sheet.ErrStructure) {
				fmt.Fprintf(os.Stderr, "The workbook must have the layout written by 'cst export', see 'cst topic spreadsheet'.\n")
			}
			return subcommands.ExitFailure
		}
		fmt.Printf("Imported %d items from %s\n", ws.session.State().Ledger.Len(), name)
		return subcommands.ExitSuccess
	})
}

type shareCmd struct{}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "print a link carrying the statement" }
func (*shareCmd) Usage() string {
	return `cst share

  Prints a link carrying the whole statement. Open it with 'cst open'.
`
}

func (*shareCmd) SetFlags(f *flag.FlagSet) {}

func (c *shareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		link, err := ws.codec.URL(ws.session.State())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(link)
		return subcommands.ExitSuccess
	})
}

type openCmd struct{}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "replace the statement with a shared one" }
func (*openCmd) Usage() string {
	return `cst open <link>

  Replaces the statement with the one carried by a share link. A link that
  cannot be decoded changes nothing.
`
}

func (*openCmd) SetFlags(f *flag.FlagSet) {}

func (c *openCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: open takes exactly one link.")
		return subcommands.ExitUsageError
	}
	s, err := share.DecodeURL(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		ws.session.Replace(ctx, s)
		fmt.Printf("Opened %q, %d items\n", s.Meta.ProjectName, s.Ledger.Len())
		return subcommands.ExitSuccess
	})
}
