package order

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tiffinly/dabba/pkg/types"
)

// BulkFailure is one rejected item of a bulk operation.
type BulkFailure struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// BulkResult aggregates a bulk operation. Items are independent: one
// failure never blocks or rolls back a sibling's success.
type BulkResult struct {
	Success []string      `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

const bulkConcurrency = 8

// BulkUpdateStatus applies the same single-item status-update rules
// independently per order id.
func (s *Service) BulkUpdateStatus(ctx context.Context, actor types.Actor, orderIDs []string, target types.OrderStatus) *BulkResult {
	return s.bulk(ctx, orderIDs, func(ctx context.Context, id string) error {
		_, err := s.UpdateStatus(ctx, actor, id, target)
		return err
	})
}

// BulkConfirmDelivery confirms delivery independently per order id.
func (s *Service) BulkConfirmDelivery(ctx context.Context, actor types.Actor, orderIDs []string) *BulkResult {
	return s.bulk(ctx, orderIDs, func(ctx context.Context, id string) error {
		_, err := s.ConfirmDelivery(ctx, actor, id)
		return err
	})
}

// bulk fans the per-id work out with bounded concurrency. Each unit does its
// own read-modify-write, so units never share in-process state beyond the
// result buckets.
func (s *Service) bulk(ctx context.Context, orderIDs []string, fn func(ctx context.Context, id string) error) *BulkResult {
	res := &BulkResult{Success: []string{}, Failed: []BulkFailure{}}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for _, id := range orderIDs {
		g.Go(func() error {
			err := fn(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed = append(res.Failed, BulkFailure{OrderID: id, Reason: err.Error()})
			} else {
				res.Success = append(res.Success, id)
			}
			// per-item errors are aggregated, never escalated
			return nil
		})
	}
	_ = g.Wait()
	return res
}
