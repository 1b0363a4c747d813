// ABOUTME: Terminal front end for the recipe finder
// ABOUTME: Browses meals in-process against the catalog or remotely through a running server

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "recipes",
		Usage: "Search meals, filter by category and area, and read recipes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "Recipe finder server URL; empty queries the catalog directly",
				Sources: cli.EnvVars("RECIPES_API_URL"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			SearchCommand(),
			ShowCommand(),
			CategoriesCommand(),
			AreasCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
