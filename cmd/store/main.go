package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

const serviceName = "simple-store"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  serviceName,
		Usage: "retail catalog with per-session shopping carts",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the store over HTTP",
				Action: serve,
			},
			{
				Name:   "shell",
				Usage:  "shop interactively in a single session",
				Action: shellCommand,
			},
			{
				Name:  "import",
				Usage: "seed a YAML catalog into SQLite or MongoDB",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "YAML catalog to import (defaults to CATALOG_PATH)",
					},
					&cli.StringFlag{
						Name:     "target",
						Aliases:  []string{"t"},
						Usage:    "destination: sqlite or mongo",
						Required: true,
					},
				},
				Action: importCommand,
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
