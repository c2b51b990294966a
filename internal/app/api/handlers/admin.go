package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/tiffinly/dabba/internal/app/api/middleware"
	"github.com/tiffinly/dabba/internal/app/service/dailymeal"
	"github.com/tiffinly/dabba/internal/app/service/order"
	"github.com/tiffinly/dabba/internal/app/service/ordergen"
	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/response"
	"github.com/tiffinly/dabba/pkg/types"
)

type MenuItem struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

type SetTodayMealRequest struct {
	VendorCategory string `json:"vendor_category" binding:"required"`
	// Date defaults to today in the business timezone.
	Date        string     `json:"date"`
	LunchMenus  []MenuItem `json:"lunch_menus"`
	DinnerMenus []MenuItem `json:"dinner_menus"`
}

// GenerationResultView summarizes a generation batch for API callers.
type GenerationResultView struct {
	LogID           string                        `json:"log_id"`
	CreatedCount    int                           `json:"created_count"`
	CreatedOrderIDs []string                      `json:"created_order_ids"`
	SkippedExisting int                           `json:"skipped_existing"`
	Failures        []models.OrderCreationFailure `json:"failures"`
}

type SetTodayMealResponse struct {
	DailyMeal  *models.DailyMeal     `json:"daily_meal"`
	Generation *GenerationResultView `json:"generation"`
}

func toMenuRefs(items []MenuItem) []models.MenuItemRef {
	return lo.Map(items, func(m MenuItem, _ int) models.MenuItemRef {
		return models.MenuItemRef{ID: m.ID, Name: m.Name}
	})
}

func toGenerationView(res *ordergen.Result) *GenerationResultView {
	if res == nil {
		return nil
	}
	return &GenerationResultView{
		LogID:           res.LogID,
		CreatedCount:    len(res.Created),
		CreatedOrderIDs: lo.Map(res.Created, func(o *models.Order, _ int) string { return o.ID }),
		SkippedExisting: res.SkippedExisting,
		Failures:        res.Failures,
	}
}

// @Summary      Set Today's Meal (Admin)
// @Description  Records the daily meal selection for a vendor category and generates orders. Create-once per day.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body SetTodayMealRequest true "Meal selection"
// @Success      200  {object}  response.APIResponse[SetTodayMealResponse]
// @Router       /api/v1/admin/set_today_meal [post]
func ApiSetTodayMeal(daily *dailymeal.Service, clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetTodayMealRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.Date == "" {
			req.Date = clock.Today(clk)
		}
		actor := middleware.ActorFrom(c)
		meal, res, err := daily.SetTodayMeal(c.Request.Context(), dailymeal.SetTodayMealParams{
			VendorCategory: req.VendorCategory,
			Date:           req.Date,
			LunchMenus:     toMenuRefs(req.LunchMenus),
			DinnerMenus:    toMenuRefs(req.DinnerMenus),
			ActorID:        actor.ID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(&SetTodayMealResponse{DailyMeal: meal, Generation: toGenerationView(res)}))
	}
}

type RefreshOrdersRequest struct {
	SubscriptionID string `json:"subscription_id" binding:"required"`
	Date           string `json:"date"`
}

// @Summary      Refresh Orders (Admin)
// @Description  Resyncs one subscription against today's meal selection. Idempotent.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body RefreshOrdersRequest true "Refresh request"
// @Success      200  {object}  response.APIResponse[GenerationResultView]
// @Router       /api/v1/admin/refresh_orders [post]
func ApiRefreshOrders(gen *ordergen.Service, clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.Date == "" {
			req.Date = clock.Today(clk)
		}
		actor := middleware.ActorFrom(c)
		res, err := gen.RefreshSubscription(c.Request.Context(), req.SubscriptionID, req.Date, actor.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(toGenerationView(res)))
	}
}

// @Summary      List Order Creation Logs (Admin)
// @Description  Paginated, filterable listing of generation batch logs.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body ordergen.ScanLogsRequest true "Filters, pagination and sorting"
// @Success      200  {object}  response.APIResponse[ordergen.ScanLogsResponse]
// @Router       /api/v1/admin/list_order_creation_logs [post]
func ApiListOrderCreationLogs(gen *ordergen.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordergen.ScanLogsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := gen.ScanCreationLogs(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type RetryFailedOrderRequest struct {
	LogID string `json:"log_id" binding:"required"`
	Index *int   `json:"index" binding:"required"`
}

type RetryFailedOrderResponse struct {
	Message string `json:"message"`
}

// @Summary      Retry Failed Order (Admin)
// @Description  Re-attempts creation for exactly one failed item of a generation batch.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body RetryFailedOrderRequest true "Log entry and failure index"
// @Success      200  {object}  response.APIResponse[RetryFailedOrderResponse]
// @Router       /api/v1/admin/retry_failed_order [post]
func ApiRetryFailedOrder(gen *ordergen.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RetryFailedOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		msg, err := gen.RetryFailed(c.Request.Context(), req.LogID, *req.Index, actor.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(&RetryFailedOrderResponse{Message: msg}))
	}
}

type ConfirmDeliveryRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// @Summary      Confirm Delivery (Admin)
// @Description  Confirms an out-for-delivery order as delivered and consumes a credit.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body ConfirmDeliveryRequest true "Order id"
// @Success      200  {object}  response.APIResponse[models.Order]
// @Router       /api/v1/admin/confirm_delivery [post]
func ApiConfirmDelivery(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		ord, err := orders.ConfirmDelivery(c.Request.Context(), actor, req.OrderID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(ord))
	}
}

type BulkConfirmDeliveryRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required"`
}

// @Summary      Bulk Confirm Delivery (Admin)
// @Description  Confirms delivery per order id independently; one failure never blocks a sibling.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body BulkConfirmDeliveryRequest true "Order ids"
// @Success      200  {object}  response.APIResponse[order.BulkResult]
// @Router       /api/v1/admin/bulk_confirm_delivery [post]
func ApiBulkConfirmDelivery(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkConfirmDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		res := orders.BulkConfirmDelivery(c.Request.Context(), actor, req.OrderIDs)
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type BulkUpdateOrderStatusRequest struct {
	OrderIDs []string          `json:"order_ids" binding:"required"`
	Status   types.OrderStatus `json:"status" binding:"required"`
}

// @Summary      Bulk Update Order Status (Admin)
// @Description  Applies the same single-item transition rules independently per order id.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body BulkUpdateOrderStatusRequest true "Order ids and target status"
// @Success      200  {object}  response.APIResponse[order.BulkResult]
// @Router       /api/v1/admin/bulk_update_order_status [post]
func ApiBulkUpdateOrderStatus(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkUpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		actor := middleware.ActorFrom(c)
		res := orders.BulkUpdateStatus(c.Request.Context(), actor, req.OrderIDs, req.Status)
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, daily *dailymeal.Service, gen *ordergen.Service, orders *order.Service, clk clock.Clock) {
	r.POST("/set_today_meal", ApiSetTodayMeal(daily, clk))
	r.POST("/refresh_orders", ApiRefreshOrders(gen, clk))
	r.POST("/list_order_creation_logs", ApiListOrderCreationLogs(gen))
	r.POST("/retry_failed_order", ApiRetryFailedOrder(gen))
	r.POST("/update_order_status", ApiUpdateOrderStatus(orders))
	r.POST("/bulk_update_order_status", ApiBulkUpdateOrderStatus(orders))
	r.POST("/confirm_delivery", ApiConfirmDelivery(orders))
	r.POST("/bulk_confirm_delivery", ApiBulkConfirmDelivery(orders))
}
