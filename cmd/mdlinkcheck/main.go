package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdlinkcheck/cmd/mdlinkcheck/commands"
	"git.home.luguber.info/inful/mdlinkcheck/internal/config"
	"git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
)

func main() {
	// Dotenv values feed the MDLINKCHECK_* flag bindings, so load them before parsing.
	if _, err := config.LoadEnvFiles("."); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	cli := &commands.CLI{}
	global := &commands.Global{Stdout: os.Stdout, Stderr: os.Stderr}
	parser, err := kong.New(cli,
		kong.Name("mdlinkcheck"),
		kong.Description("Find relative links in tracked markdown files that point to missing files."),
		kong.UsageOnError(),
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.Errorf("%s", err)
		os.Exit(2)
	}

	err = ctx.Run(global, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
