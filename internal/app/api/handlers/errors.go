package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiffinly/dabba/internal/app/service/dailymeal"
	"github.com/tiffinly/dabba/internal/app/service/order"
	"github.com/tiffinly/dabba/internal/app/service/ordergen"
	"github.com/tiffinly/dabba/internal/app/service/subscription"
	"github.com/tiffinly/dabba/pkg/response"
)

// respondErr maps service errors onto the response envelope. Every policy
// violation carries the violated rule in its message, so the detail string
// is passed through for the caller to render.
func respondErr(c *gin.Context, err error) {
	code := response.APIResponseCodeError
	switch {
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, subscription.ErrNotFound),
		errors.Is(err, subscription.ErrPlanNotFound),
		errors.Is(err, ordergen.ErrDailyMealNotFound),
		errors.Is(err, ordergen.ErrLogNotFound):
		code = response.APIResponseCodeNotFound
	case errors.Is(err, dailymeal.ErrAlreadySet),
		errors.Is(err, order.ErrConcurrentChange):
		code = response.APIResponseCodeConflict
	case errors.Is(err, order.ErrRoleForbidden),
		errors.Is(err, order.ErrNotOwner):
		code = response.APIResponseCodeForbidden
	case errors.Is(err, order.ErrTerminalState),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrCutoffPassed),
		errors.Is(err, order.ErrNoSkipCredit),
		errors.Is(err, order.ErrNoCreditsLeft),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, dailymeal.ErrNoMenus),
		errors.Is(err, ordergen.ErrBadFailureIndex):
		code = response.APIResponseCodeBadRequest
	}
	c.JSON(http.StatusOK, response.ErrorT(code, err.Error()))
}
