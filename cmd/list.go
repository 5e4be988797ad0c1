/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"rssdelivery/feed"
	"rssdelivery/feed/services"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the registered feed services",
		Description: `Prints every feed service after override resolution, highest
priority first, with the path it is served under.`,
		Action: func(ctx *cli.Context) error {
			registry := feed.NewRegistry(services.Registrations()...)
			if err := registry.Init(); err != nil {
				return err
			}
			for _, svc := range registry.List() {
				fmt.Printf("%3d  %-12s  /feed/%s  (%s, %d per page)\n",
					svc.Priority(), svc.Identifier(), svc.Identifier(), svc.Label(), svc.PageSize())
			}
			return nil
		},
	}
}
