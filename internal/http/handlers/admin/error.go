package admin

import (
	"errors"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError struct {
	target error
	code   int
	key    string
}

var catalogErrorMappings = []mappedHandlerError{
	{service.ErrProductNotFound, response.CodeNotFound, "error.product_not_found"},
	{service.ErrCategoryNotFound, response.CodeNotFound, "error.category_not_found"},
	{service.ErrCategoryNotEmpty, response.CodeConflict, "error.category_in_use"},
	{service.ErrProductStatusConflict, response.CodeBadRequest, "error.product_status_conflict"},
	{service.ErrStockInsufficient, response.CodeConflict, "error.stock_insufficient"},
}

var orderErrorMappings = []mappedHandlerError{
	{service.ErrOrderNotFound, response.CodeNotFound, "error.order_not_found"},
	{service.ErrOrderStatusInvalid, response.CodeConflict, "error.order_status_invalid"},
	{service.ErrPaymentMethodInvalid, response.CodeBadRequest, "error.payment_method_invalid"},
}

var accountErrorMappings = []mappedHandlerError{
	{service.ErrAccountNotFound, response.CodeNotFound, "error.account_not_found"},
	{service.ErrPointsAmountInvalid, response.CodeBadRequest, "error.points_amount_invalid"},
}

func respondWithMappedError(c *gin.Context, mappings []mappedHandlerError, err error, fallbackKey string) {
	for _, mapping := range mappings {
		if errors.Is(err, mapping.target) {
			shared.RespondError(c, mapping.code, mapping.key, nil)
			return
		}
	}
	shared.RespondError(c, response.CodeInternal, fallbackKey, err)
}
