package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/internal/platform/push"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/logctx"
	"github.com/tiffinly/dabba/pkg/types"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrNotOwner         = errors.New("order belongs to a different user")
	ErrCutoffPassed     = errors.New("cutoff passed")
	ErrNoSkipCredit     = errors.New("no skip credit available")
	ErrNoCreditsLeft    = errors.New("plan delivery credits exhausted")
	ErrConcurrentChange = errors.New("order changed concurrently, retry")
)

// Service drives the order lifecycle. Every transition is decided by the
// pure Decide function and applied together with its ledger delta in one
// database transaction.
type Service struct {
	db   *gorm.DB
	cfg  *config.Config
	log  *zap.SugaredLogger
	clk  clock.Clock
	push push.Sender
}

func NewService(db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger, clk clock.Clock, sender push.Sender) *Service {
	return &Service{db: db, cfg: cfg, log: log, clk: clk, push: sender}
}

// Get loads one order by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	var ord models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &ord, nil
}

// UpdateStatus applies the status-update operation: the target status is
// mapped onto an action, so a vendor asking for delivered is rejected by the
// capability set while the same call from an admin confirms delivery.
func (s *Service) UpdateStatus(ctx context.Context, actor types.Actor, orderID string, target types.OrderStatus) (*models.Order, error) {
	action, err := ActionForStatus(target)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, orderID, action, "")
}

// Skip is the user-initiated skip: upcoming only, before the cutoff, and
// only while skip allowance remains. Consumes a skip credit, never a
// delivery credit.
func (s *Service) Skip(ctx context.Context, actor types.Actor, orderID, reason string) (*models.Order, error) {
	return s.apply(ctx, actor, orderID, ActionSkip, reason)
}

// Cancel is the user-initiated cancel: upcoming only, before the cutoff.
// Always consumes a delivery credit.
func (s *Service) Cancel(ctx context.Context, actor types.Actor, orderID, reason string) (*models.Order, error) {
	return s.apply(ctx, actor, orderID, ActionCancel, reason)
}

// ConfirmDelivery is the admin-only confirmation: stamps who confirmed and
// when, consumes a delivery credit, and notifies the subscriber best-effort.
func (s *Service) ConfirmDelivery(ctx context.Context, actor types.Actor, orderID string) (*models.Order, error) {
	return s.apply(ctx, actor, orderID, ActionConfirmDelivery, "")
}

func (s *Service) cutoff() time.Duration {
	h := s.cfg.Orders.CancelCutoffHours
	if h <= 0 {
		h = 2
	}
	return time.Duration(h) * time.Hour
}

// apply loads the order, runs Decide, and writes the new status and the
// ledger delta atomically. The status write is a compare-and-swap on the
// previous status so two concurrent transitions cannot both land.
func (s *Service) apply(ctx context.Context, actor types.Actor, orderID string, action Action, reason string) (*models.Order, error) {
	var ord models.Order
	var sub models.UserSubscription

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", orderID).First(&ord).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, orderID)
			}
			return fmt.Errorf("failed to load order: %w", err)
		}

		decision, err := Decide(ord.Status, action, actor.Role)
		if err != nil {
			return err
		}

		if action == ActionSkip || action == ActionCancel {
			if actor.Role == types.ActorRoleUser && ord.UserID != actor.ID {
				return fmt.Errorf("%w: order %s", ErrNotOwner, orderID)
			}
			deliveryAt, err := clock.DeliveryAt(s.clk, ord.DeliveryDate, ord.DeliveryTime)
			if err != nil {
				return err
			}
			if remaining := deliveryAt.Sub(s.clk.Now()); remaining <= s.cutoff() {
				return fmt.Errorf("%w: must act more than %v before the %s delivery time",
					ErrCutoffPassed, s.cutoff(), ord.MealType)
			}
		}

		if err := tx.Where("id = ?", ord.UserSubscriptionID).First(&sub).Error; err != nil {
			return fmt.Errorf("failed to load subscription %s: %w", ord.UserSubscriptionID, err)
		}

		now := s.clk.Now()
		updates := map[string]any{"status": decision.Next}
		switch action {
		case ActionSkip:
			updates["skip_details"] = datatypes.NewJSONType(&models.ActionDetails{Reason: reason, By: actor.ID, At: now})
		case ActionCancel:
			updates["cancellation_details"] = datatypes.NewJSONType(&models.ActionDetails{Reason: reason, By: actor.ID, At: now})
		case ActionConfirmDelivery:
			updates["delivery_confirmation"] = datatypes.NewJSONType(&models.DeliveryConfirmation{ConfirmedAt: now, By: actor.ID})
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", ord.ID, ord.Status).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrConcurrentChange, ord.ID)
		}

		// the ceiling guard rides on the UPDATE itself, so a concurrent
		// transition on a sibling order can never push a counter past its
		// allowance; an unmatched guard rolls the order write back with it
		if decision.Delta.CreditsUsed > 0 || decision.Delta.SkipsUsed > 0 {
			counters := map[string]any{}
			q := tx.Model(&models.UserSubscription{}).Where("id = ?", sub.ID)
			if decision.Delta.CreditsUsed > 0 {
				q = q.Where("credits_used + ? <= credits_total", decision.Delta.CreditsUsed)
				counters["credits_used"] = gorm.Expr("credits_used + ?", decision.Delta.CreditsUsed)
			}
			if decision.Delta.SkipsUsed > 0 {
				q = q.Where("skips_used + ? <= skip_allowance", decision.Delta.SkipsUsed)
				counters["skips_used"] = gorm.Expr("skips_used + ?", decision.Delta.SkipsUsed)
			}
			res := q.Updates(counters)
			if res.Error != nil {
				return fmt.Errorf("failed to update subscription credits: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				if decision.Delta.SkipsUsed > 0 {
					return fmt.Errorf("%w: %d of %d skips already used",
						ErrNoSkipCredit, sub.SkipsUsed, sub.SkipAllowance)
				}
				return fmt.Errorf("%w: %d of %d credits already used",
					ErrNoCreditsLeft, sub.CreditsUsed, sub.CreditsTotal)
			}
		}

		ord.Status = decision.Next
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("order transition",
		"order_id", ord.ID, "action", action, "status", ord.Status,
		"actor_id", actor.ID, "role", actor.Role)

	if action == ActionConfirmDelivery {
		go s.notifyDelivered(context.WithoutCancel(ctx), &ord, sub.PushTokens)
	}
	return &ord, nil
}

// notifyDelivered is best-effort: failures are logged and swallowed.
func (s *Service) notifyDelivered(ctx context.Context, ord *models.Order, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	title := "Order delivered"
	body := fmt.Sprintf("Your %s for %s has been delivered.", ord.MealType, ord.DeliveryDate)
	if err := s.push.Send(ctx, tokens, title, body); err != nil {
		s.log.Warnw("push notification failed", "order_id", ord.ID, "err", err)
	}
}

// ListUserOrdersRequest filters a user's order history.
type ListUserOrdersRequest struct {
	UserID   string
	Status   types.OrderStatus
	FromDate string
	ToDate   string
	From     int
	Size     int
}

// ListUserOrders returns a user's orders, newest delivery first.
func (s *Service) ListUserOrders(ctx context.Context, req *ListUserOrdersRequest) ([]*models.Order, int64, error) {
	if req == nil || req.UserID == "" {
		return nil, 0, fmt.Errorf("user id required")
	}
	if req.Size <= 0 {
		req.Size = 20
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", req.UserID)
	if req.Status != "" {
		tx = tx.Where("status = ?", req.Status)
	}
	if req.FromDate != "" {
		tx = tx.Where("delivery_date >= ?", req.FromDate)
	}
	if req.ToDate != "" {
		tx = tx.Where("delivery_date <= ?", req.ToDate)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var items []*models.Order
	if err := tx.Order("delivery_date desc, meal_type asc").
		Offset(req.From).Limit(req.Size).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return items, total, nil
}
