package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mapidoc/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = config.DefaultPath
	}
	return RunInit(g, path, i.Force)
}

func RunInit(g *Global, configPath string, force bool) error {
	fmt.Fprintln(g.Stdout, "Initializing mapidoc project")
	fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		fmt.Fprintln(g.Stdout, "Initialization failed")
		return err
	}
	fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}
