package ordergen

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/logctx"
	"github.com/tiffinly/dabba/pkg/types"
)

// ScanLogsRequest pages through creation log entries with optional filters.
type ScanLogsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanLogsResponse struct {
	Items []*models.OrderCreationLog `json:"items"`
	Total int64                      `json:"total"`
}

var logSortFields = map[string]bool{
	"created_at":      true,
	"meal_date":       true,
	"total_attempted": true,
	"created_count":   true,
}

// ScanCreationLogs implements paginated admin listing with filters.
func (s *Service) ScanCreationLogs(ctx context.Context, req *ScanLogsRequest) (*ScanLogsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.OrderCreationLog{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd{Filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count creation logs: %w", err)
	}

	sortBy := req.SortBy
	if !logSortFields[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := req.SortOrder
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	var items []*models.OrderCreationLog
	if err := tx.Order(sortBy + " " + sortOrder).
		Offset(req.From).Limit(req.Size).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list creation logs: %w", err)
	}
	return &ScanLogsResponse{Items: items, Total: total}, nil
}

// RetryFailed re-attempts exactly one previously failed item of a batch.
// The idempotency key still applies, so an order that appeared through some
// other path since the failure resolves the entry without duplicating it.
// Retry is an explicit, audited admin action; nothing retries automatically.
func (s *Service) RetryFailed(ctx context.Context, logID string, index int, actorID string) (string, error) {
	var message string
	var resolved bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the whole failures column is rewritten below, so the entry row is
		// locked for the duration: concurrent retries on sibling indexes
		// serialize instead of clobbering each other's flags
		var entry models.OrderCreationLog
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", logID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrLogNotFound, logID)
			}
			return fmt.Errorf("failed to load creation log: %w", err)
		}

		failures := entry.Failures.Data()
		if index < 0 || index >= len(failures) {
			return fmt.Errorf("%w: %d of %d", ErrBadFailureIndex, index, len(failures))
		}
		f := &failures[index]
		if f.Resolved {
			message = "failure already resolved"
			resolved = true
			return nil
		}

		f.Retried = true

		sub, err := s.subs.Get(ctx, f.SubscriptionID)
		if err != nil {
			f.Reason = err.Error()
			message = fmt.Sprintf("retry failed: %v", err)
		} else {
			meal, mealErr := s.loadDailyMealByID(ctx, entry.DailyMealID)
			if mealErr != nil {
				f.Reason = mealErr.Error()
				message = fmt.Sprintf("retry failed: %v", mealErr)
			} else if _, created, createErr := s.createOne(ctx, tx, meal, sub, f.MealType); createErr != nil {
				f.Reason = createErr.Error()
				message = fmt.Sprintf("retry failed: %v", createErr)
			} else {
				f.Resolved = true
				if created {
					message = "order created"
				} else {
					message = "order already exists"
				}
			}
		}
		resolved = f.Resolved

		if err := tx.Model(&entry).
			Update("failures", datatypes.NewJSONType(failures)).Error; err != nil {
			return fmt.Errorf("failed to update creation log: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logctx.FromCtx(ctx, s.log).Infow("order creation retry",
		"log_id", logID, "index", index, "actor_id", actorID,
		"resolved", resolved, "message", message)
	return message, nil
}

func (s *Service) loadDailyMealByID(ctx context.Context, id string) (*models.DailyMeal, error) {
	var meal models.DailyMeal
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDailyMealNotFound, id)
		}
		return nil, fmt.Errorf("failed to load daily meal: %w", err)
	}
	return &meal, nil
}
