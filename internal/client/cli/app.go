// Package cli implements the interactive Lockbox terminal client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/mkraev/lockbox/internal/client/api"
	"github.com/mkraev/lockbox/internal/client/config"
)

type App struct {
	config *config.Config
	client *api.Client
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.NewClient(c.ServerEndpointAddr, api.NewSessionStore(c.SessionFile))
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.HasSession()
}
