package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/mirae-store/mirae-admin/internal/config"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

// Module wires the event publisher and its transition notifier.
var Module = fx.Options(
	fx.Provide(
		newPublisher,
		fx.Annotate(
			NewNotifier,
			fx.As(new(orderstatus.Notifier)),
			fx.ResultTags(usecase.NotifierGroup),
		),
	),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("event publishing disabled")
		return NewNopPublisher(p.Logger), nil
	}
	return NewAMQPPublisher(p.Config.AMQPURL, p.Config.EventsExchange, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}
