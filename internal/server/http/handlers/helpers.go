package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirae-store/mirae-admin/internal/adapter/storeapi"
	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/server/http/dto"
	"github.com/mirae-store/mirae-admin/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated session from context.
func CurrentPrincipal(c *gin.Context) *model.Principal {
	val, ok := c.Get(middleware.PrincipalContextKey)
	if !ok {
		return nil
	}
	principal, _ := val.(*model.Principal)
	return principal
}

// CurrentAdminID returns the authenticated admin identifier or an empty string.
func CurrentAdminID(c *gin.Context) string {
	if p := CurrentPrincipal(c); p != nil {
		return p.AdminID
	}
	return ""
}

// errorStatus maps domain errors to an HTTP status and a machine readable code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidOrderID):
		return http.StatusBadRequest, "invalid_order_id"
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_status"
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domainErrors.ErrTransitionInProgress):
		return http.StatusConflict, "busy"
	case errors.Is(err, domainErrors.ErrStaleStatus):
		return http.StatusConflict, "stale"
	case errors.Is(err, domainErrors.ErrStatusConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domainErrors.ErrUpdateNotApplied):
		return http.StatusConflict, "not_applied"
	case errors.Is(err, domainErrors.ErrAlreadyPaid):
		return http.StatusConflict, "already_paid"
	case errors.Is(err, domainErrors.ErrAlreadyInStatus):
		return http.StatusUnprocessableEntity, "already_in_status"
	case errors.Is(err, domainErrors.ErrIllegalTransition):
		return http.StatusUnprocessableEntity, "illegal_transition"
	case errors.Is(err, domainErrors.ErrNotManualPayment):
		return http.StatusUnprocessableEntity, "not_manual_payment"
	case errors.Is(err, domainErrors.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "confirmation_required"
	case errors.Is(err, domainErrors.ErrOutcomeUnknown):
		return http.StatusGatewayTimeout, "outcome_unknown"
	case errors.Is(err, domainErrors.ErrStoreUnavailable):
		return http.StatusBadGateway, "store_error"
	}

	var apiErr *storeapi.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway, "store_error"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message, Code: code})
}
