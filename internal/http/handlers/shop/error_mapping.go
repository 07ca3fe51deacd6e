package shop

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

var purchaseErrorMappings = []mappedHandlerError{
	{service.ErrProductNotFound, response.CodeNotFound, "error.product_not_found"},
	{service.ErrProductNotAvailable, response.CodeConflict, "error.product_not_available"},
	{service.ErrStockInsufficient, response.CodeConflict, "error.stock_insufficient"},
	{service.ErrPointsInsufficient, response.CodeConflict, "error.points_insufficient"},
	{service.ErrPaymentMethodInvalid, response.CodeBadRequest, "error.payment_method_invalid"},
	{service.ErrPurchaseItemInvalid, response.CodeBadRequest, "error.purchase_item_invalid"},
}

var cartErrorMappings = append([]mappedHandlerError{
	{service.ErrCartItemNotFound, response.CodeNotFound, "error.cart_item_not_found"},
	{service.ErrCartEmpty, response.CodeBadRequest, "error.cart_empty"},
}, purchaseErrorMappings...)

var orderErrorMappings = []mappedHandlerError{
	{service.ErrOrderNotFound, response.CodeNotFound, "error.order_not_found"},
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
