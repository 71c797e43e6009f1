package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/afrireads/bookgate/cmd/app/commands"
	"github.com/afrireads/bookgate/internal/app"
	"github.com/afrireads/bookgate/internal/config"
)

func getAccessLinkCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-access-link",
			Usage: "Issue a new access link for a reader and a book",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user-id",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Reader user ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "book-id",
					Aliases:  []string{"b"},
					Required: true,
					Usage:    "Book ID (UUID)",
				},
				&cli.FloatFlag{
					Name:    "ttl-hours",
					Aliases: []string{"t"},
					Value:   0,
					Usage:   "Link lifetime in hours (0 uses the configured default)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accessLinkUseCase, err := container.AccessLinkUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAccessLink(
					ctx,
					accessLinkUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("book-id"),
					cmd.Float("ttl-hours"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "revoke-access-link",
			Usage: "Revoke an access link by its plain token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Plain link token to revoke",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accessLinkUseCase, err := container.AccessLinkUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevokeAccessLink(
					ctx,
					accessLinkUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
				)
			},
		},
	}
}
