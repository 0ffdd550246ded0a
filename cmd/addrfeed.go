package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sergds/addrfeed/internal"
	"github.com/sergds/addrfeed/internal/client"
	"github.com/sergds/addrfeed/internal/server"
	"github.com/urfave/cli/v2"
)

// Where it all begins...
func main() {
	app := &cli.App{
		Name:    "addrfeed",
		Usage:   "fqdn templates in, fresh address lists out",
		Version: internal.Version(),
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"s", "srv"},
				Usage:   "Run addrfeed server from here.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to server yaml config"},
				},
				Action: func(ctx *cli.Context) error {
					server.ServerMain(ctx.String("config"))
					return nil
				},
			},
			{
				Name:    "feed",
				Aliases: []string{"f"},
				Usage:   "Fetch one resolution pass from an addrfeed server.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", Usage: "server base url, discovered via mDNS when empty"},
					&cli.Int64Flag{Name: "span", Usage: "freshness window in seconds (server default when 0)"},
					&cli.StringFlag{Name: "format", Value: "tree", Usage: "tree, ipv4 or ipv6"},
				},
				Action: func(ctx *cli.Context) error {
					client.Feed(ctx.String("server"), ctx.Int64("span"), ctx.String("format"))
					os.Exit(0)
					return nil
				},
			},
			{
				Name:    "config",
				Aliases: []string{"cfg"},
				Usage:   "Inspect or replace stored templates.",
				Subcommands: []*cli.Command{
					{
						Name:  "get",
						Usage: "Print the stored template document.",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "server", Usage: "server base url, discovered via mDNS when empty"},
						},
						Action: func(ctx *cli.Context) error {
							if ctx.NArg() == 0 {
								fmt.Println("Missing config id!")
								os.Exit(0)
							}
							client.ConfigGet(ctx.String("server"), ctx.Args().First())
							os.Exit(0)
							return nil
						},
					},
					{
						Name:  "set",
						Usage: "Replace the stored template document from a local json file.",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "server", Usage: "server base url, discovered via mDNS when empty"},
							&cli.StringFlag{Name: "key", Usage: "replacement key the server was configured with"},
						},
						Action: func(ctx *cli.Context) error {
							if ctx.NArg() != 2 {
								fmt.Println("Usage: addrfeed config set <id> <file.json>")
								os.Exit(0)
							}
							client.ConfigSet(ctx.String("server"), ctx.Args().Get(0), ctx.Args().Get(1), ctx.String("key"))
							os.Exit(0)
							return nil
						},
					},
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
