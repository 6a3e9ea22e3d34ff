package di

import (
	"go.uber.org/fx"

	"github.com/mirae-store/mirae-admin/internal/adapter/storeapi"
	"github.com/mirae-store/mirae-admin/internal/app"
	"github.com/mirae-store/mirae-admin/internal/config"
	"github.com/mirae-store/mirae-admin/internal/events"
	"github.com/mirae-store/mirae-admin/internal/logger"
	"github.com/mirae-store/mirae-admin/internal/pkg/auth"
	"github.com/mirae-store/mirae-admin/internal/server/http/handlers"
	"github.com/mirae-store/mirae-admin/internal/server/http/router"
	"github.com/mirae-store/mirae-admin/internal/storage/postgres"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		storeapi.Module,
		events.Module,
		usecase.Module,
		fx.Provide(
			func(client storeapi.Client) usecase.StoreAuthenticator { return client },
			func(publisher events.Publisher) usecase.StatusChangePublisher { return publisher },
			func(facade *app.AdminFacade) handlers.AdminFacade { return facade },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
