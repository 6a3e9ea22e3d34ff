package storeapi

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mirae-store/mirae-admin/internal/config"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
)

// Module exposes the store API client and order repository to fx graph.
var Module = fx.Provide(
	newClient,
	fx.Annotate(NewOrderRepository, fx.As(new(repository.OrderRepository))),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.StoreAPIAddress, p.Config.StoreAPITimeout, p.Logger)
}
