package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiffinly/dabba/internal/app/api/middleware"
	ordersvc "github.com/tiffinly/dabba/internal/app/service/order"
	subsvc "github.com/tiffinly/dabba/internal/app/service/subscription"
	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/response"
	"github.com/tiffinly/dabba/pkg/tool"
	"github.com/tiffinly/dabba/pkg/types"
)

const testSecret = "test-secret"

type nopSender struct{}

func (nopSender) Send(ctx context.Context, tokens []string, title, body string) error { return nil }

type userFixture struct {
	router *gin.Engine
	db     *gorm.DB
	sub    *models.UserSubscription
	order  *models.Order
}

func setupUserFixture(t *testing.T) *userFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserSubscription{}, &models.Order{}))

	cfg := &config.Config{
		Auth:   config.AuthConfig{Secret: testSecret},
		Orders: config.OrdersConfig{CancelCutoffHours: 2},
	}
	clk := clock.Fixed{T: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)}
	log := zap.NewNop().Sugar()
	orders := ordersvc.NewService(db, cfg, log, clk, nopSender{})
	subs := subsvc.NewService(db, cfg, log)

	sub := &models.UserSubscription{
		ID:             tool.GenerateUUIDV7(),
		UserID:         "user-1",
		PlanID:         "plan-1",
		VendorCategory: "home-style",
		VendorID:       "vendor-1",
		Status:         types.SubscriptionStatusActive,
		StartDate:      "2026-03-01",
		EndDate:        "2026-03-30",
		LunchEnabled:   true,
		LunchTime:      "12:30",
		CreditsTotal:   30,
		SkipAllowance:  4,
		DeliveryAddress: datatypes.NewJSONType(&models.DeliveryAddress{
			Line1: "12 MG Road", City: "Pune", Pincode: "411001",
		}),
	}
	require.NoError(t, db.Create(sub).Error)

	ord := &models.Order{
		ID:                 tool.GenerateUUIDV7(),
		UserID:             sub.UserID,
		UserSubscriptionID: sub.ID,
		DailyMealID:        tool.GenerateUUIDV7(),
		VendorID:           sub.VendorID,
		MealType:           types.MealTypeLunch,
		DeliveryDate:       "2026-03-10",
		DeliveryTime:       "12:30",
		Status:             types.OrderStatusUpcoming,
	}
	require.NoError(t, db.Create(ord).Error)

	r := gin.New()
	group := r.Group("/api/v1/user")
	group.Use(middleware.AuthMiddleware(cfg, types.ActorRoleUser))
	RegisterUserRoutes(group, orders, subs)

	return &userFixture{router: r, db: db, sub: sub, order: ord}
}

func bearerFor(t *testing.T, sub string, role types.ActorRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func postJSON(t *testing.T, r *gin.Engine, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse[json.RawMessage] {
	t.Helper()
	var env response.APIResponse[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestApiSkipOrder(t *testing.T) {
	f := setupUserFixture(t)
	bearer := bearerFor(t, "user-1", types.ActorRoleUser)

	w := postJSON(t, f.router, "/api/v1/user/skip_order", bearer, SkipOrderRequest{
		OrderID: f.order.ID,
		Reason:  "traveling",
	})
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, env.Code)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", f.order.ID).Error)
	require.Equal(t, types.OrderStatusSkipped, stored.Status)

	// a second skip hits the terminal guard
	w = postJSON(t, f.router, "/api/v1/user/skip_order", bearer, SkipOrderRequest{OrderID: f.order.ID})
	env = decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeBadRequest, env.Code)
}

func TestApiCancelOrderRequiresOwnership(t *testing.T) {
	f := setupUserFixture(t)

	w := postJSON(t, f.router, "/api/v1/user/cancel_order",
		bearerFor(t, "user-2", types.ActorRoleUser),
		CancelOrderRequest{OrderID: f.order.ID})
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeForbidden, env.Code)

	w = postJSON(t, f.router, "/api/v1/user/cancel_order",
		bearerFor(t, "user-1", types.ActorRoleUser),
		CancelOrderRequest{OrderID: f.order.ID})
	env = decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, env.Code)
}

func TestApiCancelOrderNotFound(t *testing.T) {
	f := setupUserFixture(t)

	w := postJSON(t, f.router, "/api/v1/user/cancel_order",
		bearerFor(t, "user-1", types.ActorRoleUser),
		CancelOrderRequest{OrderID: "no-such-order"})
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeNotFound, env.Code)
}

func TestApiListMyOrders(t *testing.T) {
	f := setupUserFixture(t)

	w := postJSON(t, f.router, "/api/v1/user/list_my_orders",
		bearerFor(t, "user-1", types.ActorRoleUser),
		ListMyOrdersRequest{})
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, env.Code)

	var data ListMyOrdersResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.EqualValues(t, 1, data.Total)
	require.Len(t, data.Items, 1)
	require.Equal(t, f.order.ID, data.Items[0].ID)

	// another user sees nothing
	w = postJSON(t, f.router, "/api/v1/user/list_my_orders",
		bearerFor(t, "user-2", types.ActorRoleUser),
		ListMyOrdersRequest{})
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Zero(t, data.Total)
}

func TestApiGetOrder(t *testing.T) {
	f := setupUserFixture(t)

	w := postJSON(t, f.router, "/api/v1/user/get_order",
		bearerFor(t, "user-1", types.ActorRoleUser),
		GetOrderRequest{OrderID: f.order.ID})
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, env.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, f.order.ID, got.ID)

	// someone else's order reads as forbidden, not as data
	w = postJSON(t, f.router, "/api/v1/user/get_order",
		bearerFor(t, "user-2", types.ActorRoleUser),
		GetOrderRequest{OrderID: f.order.ID})
	env = decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeForbidden, env.Code)

	w = postJSON(t, f.router, "/api/v1/user/get_order",
		bearerFor(t, "user-1", types.ActorRoleUser),
		GetOrderRequest{OrderID: "no-such-order"})
	env = decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeNotFound, env.Code)
}

func TestApiListMySubscriptions(t *testing.T) {
	f := setupUserFixture(t)

	w := postJSON(t, f.router, "/api/v1/user/list_my_subscriptions",
		bearerFor(t, "user-1", types.ActorRoleUser), struct{}{})
	env := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, env.Code)

	var items []*models.UserSubscription
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	require.Equal(t, f.sub.ID, items[0].ID)

	w = postJSON(t, f.router, "/api/v1/user/list_my_subscriptions",
		bearerFor(t, "user-2", types.ActorRoleUser), struct{}{})
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Empty(t, items)
}

func TestUserRoutesRejectVendorToken(t *testing.T) {
	f := setupUserFixture(t)

	w := postJSON(t, f.router, "/api/v1/user/skip_order",
		bearerFor(t, "vendor-1", types.ActorRoleVendor),
		SkipOrderRequest{OrderID: f.order.ID})
	require.Equal(t, http.StatusForbidden, w.Code)
}
