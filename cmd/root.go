/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "rssdelivery",
		Usage: "Partner RSS delivery for the site's articles",
		Description: `Serves the site's articles as RSS documents, one dialect per
		delivery partner.

		Each partner is a registered feed service with its own XML namespaces,
		selection criteria and content rewrite rules. Articles opt into partners
		through their selected-channel metadata; the server renders the matching
		document on request at /feed/<identifier>.

		Flags can generally be set via environment variables, e.g.:

		--database => DELIVERY_DATABASE=articles.db
		--config => DELIVERY_CONFIG=config.toml
		`,
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			rollbackCmd(),
			listCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}
