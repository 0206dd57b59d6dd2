package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/costsheet"
	"github.com/etnz/costsheet/renderer"
	"github.com/google/subcommands"
)

// itemFlags are the item fields settable from the command line.
type itemFlags struct {
	values map[costsheet.Field]*string
}

func (p *itemFlags) SetFlags(f *flag.FlagSet) {
	names := map[costsheet.Field]string{
		costsheet.FieldProcessCategory: "category",
		costsheet.FieldItemName:        "item",
		costsheet.FieldSpec:            "spec",
		costsheet.FieldUnit:            "unit",
		costsheet.FieldQuantity:        "quantity",
		costsheet.FieldUnitPrice:       "price",
		costsheet.FieldVendor:          "vendor",
		costsheet.FieldNote:            "note",
	}
	p.values = make(map[costsheet.Field]*string)
	for _, field := range costsheet.Fields() {
		p.values[field] = f.String(names[field], "", fmt.Sprintf("%s (%s)", field.Label(), field))
	}
}

// item builds the line item, numbers are coerced like any edit.
func (p *itemFlags) item() costsheet.LineItem {
	var it costsheet.LineItem
	for field, v := range p.values {
		it, _ = it.With(field, *v)
	}
	return it
}

type addCmd struct{ itemFlags }

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a line item" }
func (*addCmd) Usage() string {
	return `cst add [-category <공정>] [-item <품목>] [-spec <규격>] [-unit <단위>] [-quantity <n>] [-price <n>] [-vendor <업체>] [-note <비고>]

  Appends a line item at the end of the statement. The item gets a new id.
`
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		it := ws.session.AddRow(ctx, c.item())
		fmt.Printf("Added item %d: %s\n", it.ID, costsheet.FormatNumber(it.Amount()))
		return subcommands.ExitSuccess
	})
}

type insertCmd struct {
	itemFlags
	after int
}

func (*insertCmd) Name() string     { return "insert" }
func (*insertCmd) Synopsis() string { return "insert a line item after a row" }
func (*insertCmd) Usage() string {
	return `cst insert -after <index> [item flags]

  Inserts a line item right after the row at <index>, as shown by 'cst ls'.
  Use -after -1 to insert at the top. The item flags are those of 'cst add'.
`
}

func (c *insertCmd) SetFlags(f *flag.FlagSet) {
	c.itemFlags.SetFlags(f)
	f.IntVar(&c.after, "after", -1, "Index of the row to insert after, -1 for the top.")
}

func (c *insertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		it, err := ws.session.InsertRow(ctx, c.item(), c.after)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		fmt.Printf("Inserted item %d\n", it.ID)
		return subcommands.ExitSuccess
	})
}

type setCmd struct{}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "edit one field of a line item" }
func (*setCmd) Usage() string {
	return `cst set <index> <field> <value>

  Sets a field of the row at <index>, as shown by 'cst ls'. Fields are named by
  their label (공정, 품목, 규격, 단위, 수량, 단가, 업체, 비고) or their record name
  (processCategory, itemName, ...). Numbers accept thousands separators.
`
}

func (*setCmd) SetFlags(f *flag.FlagSet) {}

func (c *setCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: set takes an index, a field and a value.")
		return subcommands.ExitUsageError
	}
	index, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid index %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	field, err := costsheet.ParseField(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		if err := ws.session.UpdateRow(ctx, index, field, f.Arg(2)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove line items" }
func (*rmCmd) Usage() string {
	return `cst rm <id>...

  Removes the line items with the given ids, as shown by 'cst ls'.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: rm takes at least one id.")
		return subcommands.ExitUsageError
	}
	var ids []int
	for _, arg := range f.Args() {
		id, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid id %q\n", arg)
			return subcommands.ExitUsageError
		}
		ids = append(ids, id)
	}
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		status := subcommands.ExitSuccess
		for _, id := range ids {
			if !ws.session.RemoveRow(ctx, id) {
				fmt.Fprintf(os.Stderr, "Warning: no item with id %d\n", id)
				status = subcommands.ExitFailure
			}
		}
		return status
	})
}

type renumberCmd struct{}

func (*renumberCmd) Name() string     { return "renumber" }
func (*renumberCmd) Synopsis() string { return "reassign item ids from 1" }
func (*renumberCmd) Usage() string {
	return `cst renumber

  Reassigns the ids of all line items sequentially from 1, in row order.
`
}

func (*renumberCmd) SetFlags(f *flag.FlagSet) {}

func (c *renumberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		s := ws.session.State()
		ws.session.Replace(ctx, s.WithLedger(s.Ledger.Renumber()))
		return subcommands.ExitSuccess
	})
}

type lsCmd struct {
	grouped bool
}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list the line items" }
func (*lsCmd) Usage() string {
	return `cst ls [-group]

  Lists the line items with their index and id. With -group, items are grouped
  by process category with a subtotal after each group. The index column is
  always the ledger index taken by set and insert.
`
}

func (c *lsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.grouped, "group", false, "Group items by process category, with subtotals.")
}

func (c *lsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withWorkspace(ctx, func(ws *workspace) subcommands.ExitStatus {
		printMarkdown(renderer.LedgerMarkdown(ws.session.State(), c.grouped))
		return subcommands.ExitSuccess
	})
}
