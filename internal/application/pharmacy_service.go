package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/clinic-portal/internal/records"
)

// OrderTransitionValidator vets an order status change before it is applied.
// Nil keeps the permissive default.
type OrderTransitionValidator func(from, to records.OrderStatus) error

// PharmacyService mediates all access to the pharmacy order collection.
// Orders are global: every role sees the same list.
type PharmacyService struct {
	store              *records.Store
	validateTransition OrderTransitionValidator
	logger             *slog.Logger
}

// NewPharmacyService wires dependencies for the pharmacy service. The
// transition validator may be nil.
func NewPharmacyService(store *records.Store, transition OrderTransitionValidator, logger *slog.Logger) *PharmacyService {
	return &PharmacyService{store: store, validateTransition: transition, logger: defaultLogger(logger)}
}

func (s *PharmacyService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PharmacyService", operation, attrs...)
}

// ListOrders returns every pharmacy order in insertion order.
func (s *PharmacyService) ListOrders(ctx context.Context) ([]records.PharmacyOrder, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("pharmacy store not configured")
	}
	orders := s.store.PharmacyOrders()
	s.loggerWith(ctx, "ListOrders").DebugContext(ctx, "orders listed", "count", len(orders))
	return orders, nil
}

// GetOrder returns the order with the given id.
func (s *PharmacyService) GetOrder(ctx context.Context, id int) (records.PharmacyOrder, error) {
	if s == nil || s.store == nil {
		return records.PharmacyOrder{}, fmt.Errorf("pharmacy store not configured")
	}
	order, err := s.store.PharmacyOrderByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.PharmacyOrder{}, ErrNotFound
		}
		return records.PharmacyOrder{}, err
	}
	return order, nil
}

// UpdateOrderStatus sets the status of an existing order; every other field
// is preserved verbatim.
func (s *PharmacyService) UpdateOrderStatus(ctx context.Context, id int, status records.OrderStatus) (result records.PharmacyOrder, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("pharmacy store not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateOrderStatus", "order_id", id, "status", status)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "order status update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "order status updated")
	}()

	if !status.Valid() {
		vErr := &ValidationError{}
		vErr.add("status", "status must be one of: pending completed")
		err = vErr
		return
	}

	existing, err := s.store.PharmacyOrderByID(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	if s.validateTransition != nil {
		if tErr := s.validateTransition(existing.Status, status); tErr != nil {
			err = tErr
			return
		}
	}

	existing.Status = status
	if err = s.store.ReplacePharmacyOrder(existing); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	result = existing
	return
}
