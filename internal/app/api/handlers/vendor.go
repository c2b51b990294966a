package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiffinly/dabba/internal/app/api/middleware"
	"github.com/tiffinly/dabba/internal/app/service/order"
	"github.com/tiffinly/dabba/pkg/response"
	"github.com/tiffinly/dabba/pkg/types"
)

type UpdateOrderStatusRequest struct {
	OrderID string            `json:"order_id" binding:"required"`
	Status  types.OrderStatus `json:"status" binding:"required"`
}

// @Summary      Update Order Status
// @Description  Moves an order forward through its fulfilment states. A vendor may mark preparing or out_for_delivery; delivered requires admin confirmation.
// @Tags         Vendor
// @Accept       json
// @Produce      json
// @Param        request body UpdateOrderStatusRequest true "Order id and target status"
// @Success      200  {object}  response.APIResponse[models.Order]
// @Router       /api/v1/vendor/update_order_status [post]
func ApiUpdateOrderStatus(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		ord, err := orders.UpdateStatus(c.Request.Context(), actor, req.OrderID, req.Status)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(ord))
	}
}

func RegisterVendorRoutes(r gin.IRouter, orders *order.Service) {
	r.POST("/update_order_status", ApiUpdateOrderStatus(orders))
}
