package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "sniper",
		Usage: "Automate transfer market searches in the FC web app",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "sniper.yaml",
				Usage:   "YAML config file, watched for tunable changes",
				Sources: cli.EnvVars("SNIPER_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file with OPENAI_API_KEY",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "browser driver: chromedp or playwright",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "web app URL to open",
			},
			&cli.StringFlag{
				Name:    "remote",
				Usage:   "devtools websocket URL of an already running browser",
				Sources: cli.EnvVars("SNIPER_REMOTE"),
			},
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "run the browser without a window",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "human readable logs",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "open the web app and serve the control panel",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "control panel listen address",
					},
				},
				Action: runCommand,
			},
			{
				Name:      "names",
				Usage:     "print the names the search field suggests for a fragment",
				ArgsUsage: "<fragment>",
				Action:    namesCommand,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func namesCommand(ctx context.Context, cmd *cli.Command) error {
	fragment := cmd.Args().First()
	if fragment == "" {
		return fmt.Errorf("fragment is required: sniper names <fragment>")
	}

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.closeAll()

	names, err := a.newController(nil).QueryNames(ctx, fragment)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Printf("%s\t%s\n", n.Name, n.Rating)
	}
	return nil
}
