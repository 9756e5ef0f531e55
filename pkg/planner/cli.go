package planner

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/railplan/railplan/pkg/config"
	"github.com/railplan/railplan/pkg/railway"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Plans journeys over the railway network dataset",
		Subcommands: []*cli.Command{
			{
				Name:      "route",
				Usage:     "plan a route between two stations",
				ArgsUsage: "<origin> <destination>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to the configuration file",
					},
					&cli.IntFlag{
						Name:  "max-changes",
						Usage: "maximum number of train changes",
					},
					&cli.BoolFlag{
						Name:  "avoid-walking",
						Usage: "reject routes containing walking connections",
					},
					&cli.StringFlag{
						Name:  "optimize",
						Value: "time",
						Usage: "optimization strategy (time, distance, changes)",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("expected <origin> <destination> arguments")
					}

					planner, err := plannerFromFlags(c)
					if err != nil {
						return err
					}

					route := planner.CalculateRoute(c.Args().Get(0), c.Args().Get(1), Preferences{
						AvoidWalking: c.Bool("avoid-walking"),
						MaxChanges:   c.Int("max-changes"),
						Optimize:     Strategy(c.String("optimize")),
					})
					if route == nil {
						return fmt.Errorf("no route found")
					}

					printRoute(route)
					return nil
				},
			},
			{
				Name:      "search",
				Usage:     "search stations by name",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to the configuration file",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 10,
						Usage: "maximum number of results",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected <query> argument")
					}

					planner, err := plannerFromFlags(c)
					if err != nil {
						return err
					}

					for _, name := range planner.SearchStations(c.Args().Get(0), c.Int("limit")) {
						fmt.Println(name)
					}
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "print dataset statistics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to the configuration file",
					},
				},
				Action: func(c *cli.Context) error {
					planner, err := plannerFromFlags(c)
					if err != nil {
						return err
					}

					stats := planner.Stats()
					fmt.Printf("Stations: %d\nLines: %d\nLines with service patterns: %d\n",
						stats.TotalStations, stats.TotalLines, stats.LinesWithPatterns)
					return nil
				},
			},
		},
	}
}

func plannerFromFlags(c *cli.Context) (*Planner, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return NewFromConfig(cfg)
}

func printRoute(route *railway.Route) {
	fmt.Printf("%s to %s\n", route.FromStation, route.ToStation)
	fmt.Printf("  %d min, %.1f km, %d change(s)\n",
		route.TotalJourneyTimeMinutes, route.TotalDistanceKM, route.ChangesRequired)

	for _, segment := range route.Segments {
		mode := segment.LineName
		if segment.IsWalking {
			mode = "walk"
		}
		fmt.Printf("  %s -> %s (%s, %d min)\n",
			segment.FromStation, segment.ToStation, mode, segment.EstimatedJourneyTimeMinutes())
	}

	for _, point := range route.InterchangePoints {
		if !point.IsUserJourneyChange {
			continue
		}
		fmt.Printf("  change at %s: %s -> %s (%s)\n",
			point.StationName, point.FromLine, point.ToLine, point.Type)
	}

	if !route.Valid {
		fmt.Println("  note: route conflicts with the requested preferences")
	}

	if path := strings.Join(route.FullPath, " - "); path != "" {
		fmt.Printf("  path: %s\n", path)
	}
}
