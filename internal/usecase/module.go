package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mirae-store/mirae-admin/internal/config"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
)

// NotifierGroup collects extra transition notifiers contributed by other modules.
const NotifierGroup = `group:"transition_notifiers"`

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	NewDashboardUseCase,
	NewJournalNotifier,
	newTransitionNotifier,
	newStatusController,
	newReconcileUseCase,
)

type notifierParams struct {
	fx.In

	Logger  *slog.Logger
	Journal *JournalNotifier
	Extra   []orderstatus.Notifier `group:"transition_notifiers"`
}

func newTransitionNotifier(p notifierParams) orderstatus.Notifier {
	notifiers := orderstatus.Notifiers{orderstatus.LogNotifier(p.Logger), p.Journal}
	return append(notifiers, p.Extra...)
}

type controllerParams struct {
	fx.In

	Orders   repository.OrderRepository
	Notifier orderstatus.Notifier
	Logger   *slog.Logger
	Config   *config.Config
}

func newStatusController(p controllerParams) *orderstatus.Controller {
	return orderstatus.NewController(p.Orders, p.Notifier, p.Logger, orderstatus.Options{
		VerifyTimeout: p.Config.StoreAPITimeout,
	})
}

type reconcileParams struct {
	fx.In

	Journal   repository.TransitionJournal
	Orders    repository.OrderRepository
	Publisher StatusChangePublisher
	Config    *config.Config
}

func newReconcileUseCase(p reconcileParams) *ReconcileUseCase {
	return NewReconcileUseCase(p.Journal, p.Orders, p.Publisher, p.Config.StoreServiceToken)
}
