package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mapidoc/cmd/mapidoc/commands"
	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal()

	ctx := kong.Parse(cli,
		kong.Name("mapidoc"),
		kong.Description("Generate Sphinx reST API pages from MATLAB +package/@Class source trees"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(global, cli); err != nil {
		adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		os.Exit(adapter.Report(os.Stderr, err))
	}
}
