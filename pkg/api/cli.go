package api

import (
	"github.com/urfave/cli/v2"

	"github.com/railplan/railplan/pkg/config"
	"github.com/railplan/railplan/pkg/planner"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the journey planning web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to the configuration file",
					},
				},
				Action: func(c *cli.Context) error {
					cfg := config.Defaults()
					if path := c.String("config"); path != "" {
						loaded, err := config.Load(path)
						if err != nil {
							return err
						}
						cfg = loaded
					}

					journeyPlanner, err := planner.NewFromConfig(cfg)
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), journeyPlanner)
				},
			},
		},
	}
}
