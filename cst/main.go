// Command cst keeps the execution statement of a construction project.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/costsheet/cmd"
	"github.com/etnz/costsheet/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when the shell is asking for completions.
	completion(commander).Complete("cst")

	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line to the shell completion.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	topics, _ := docs.GetAllTopics()
	args := map[string]complete.Predictor{
		"import": predict.Files("*.xlsx"),
		"topic":  predict.Set(append(topics, "*")),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs), Args: predict.Nothing}
		if p, ok := args[c.Name()]; ok {
			sub.Args = p
		}
		root.Sub[c.Name()] = sub
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			res[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "o", "config":
			res[f.Name] = predict.Files("*")
		case "backend":
			res[f.Name] = predict.Set{"file", "sqlite"}
		default:
			res[f.Name] = predict.Something
		}
	})
	return res
}
