package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiffinly/dabba/internal/app/api/middleware"
	"github.com/tiffinly/dabba/internal/app/service/order"
	"github.com/tiffinly/dabba/internal/app/service/subscription"
	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/response"
	"github.com/tiffinly/dabba/pkg/types"
)

type SkipOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Reason  string `json:"reason"`
}

// @Summary      Skip Order (User)
// @Description  Skips an upcoming order before the cutoff. Consumes one skip credit; the delivery credit is preserved.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body SkipOrderRequest true "Order id and optional reason"
// @Success      200  {object}  response.APIResponse[models.Order]
// @Router       /api/v1/user/skip_order [post]
func ApiSkipOrder(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SkipOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		ord, err := orders.Skip(c.Request.Context(), actor, req.OrderID, req.Reason)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(ord))
	}
}

type CancelOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Reason  string `json:"reason"`
}

// @Summary      Cancel Order (User)
// @Description  Cancels an upcoming order before the cutoff. Always consumes one delivery credit.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body CancelOrderRequest true "Order id and optional reason"
// @Success      200  {object}  response.APIResponse[models.Order]
// @Router       /api/v1/user/cancel_order [post]
func ApiCancelOrder(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		ord, err := orders.Cancel(c.Request.Context(), actor, req.OrderID, req.Reason)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(ord))
	}
}

type ListMyOrdersRequest struct {
	Status   types.OrderStatus `json:"status"`
	FromDate string            `json:"from_date"`
	ToDate   string            `json:"to_date"`
	From     int               `json:"from"`
	Size     int               `json:"size"`
}

type ListMyOrdersResponse struct {
	Total int64           `json:"total"`
	Items []*models.Order `json:"items"`
}

// @Summary      List My Orders (User)
// @Description  Paginated order history for the authenticated user, newest delivery first.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body ListMyOrdersRequest true "Filters and pagination"
// @Success      200  {object}  response.APIResponse[ListMyOrdersResponse]
// @Router       /api/v1/user/list_my_orders [post]
func ApiListMyOrders(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListMyOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		items, total, err := orders.ListUserOrders(c.Request.Context(), &order.ListUserOrdersRequest{
			UserID:   actor.ID,
			Status:   req.Status,
			FromDate: req.FromDate,
			ToDate:   req.ToDate,
			From:     req.From,
			Size:     req.Size,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(&ListMyOrdersResponse{Total: total, Items: items}))
	}
}

type GetOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// @Summary      Get Order (User)
// @Description  Loads one of the authenticated user's orders by id.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body GetOrderRequest true "Order id"
// @Success      200  {object}  response.APIResponse[models.Order]
// @Router       /api/v1/user/get_order [post]
func ApiGetOrder(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GetOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		ord, err := orders.Get(c.Request.Context(), req.OrderID)
		if err != nil {
			respondErr(c, err)
			return
		}
		if ord.UserID != actor.ID {
			respondErr(c, fmt.Errorf("%w: %s", order.ErrNotOwner, req.OrderID))
			return
		}
		c.JSON(http.StatusOK, response.OKT(ord))
	}
}

// @Summary      List My Subscriptions (User)
// @Description  Returns the authenticated user's plan instances, newest first.
// @Tags         User
// @Produce      json
// @Success      200  {object}  response.APIResponse[[]models.UserSubscription]
// @Router       /api/v1/user/list_my_subscriptions [post]
func ApiListMySubscriptions(subs *subscription.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActorFrom(c)
		items, err := subs.ListByUser(c.Request.Context(), actor.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

func RegisterUserRoutes(r gin.IRouter, orders *order.Service, subs *subscription.Service) {
	r.POST("/skip_order", ApiSkipOrder(orders))
	r.POST("/cancel_order", ApiCancelOrder(orders))
	r.POST("/get_order", ApiGetOrder(orders))
	r.POST("/list_my_orders", ApiListMyOrders(orders))
	r.POST("/list_my_subscriptions", ApiListMySubscriptions(subs))
}
