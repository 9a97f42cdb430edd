package order

import (
	"context"
	"errors"

	"velora-be/internal/logger"

	"go.uber.org/zap"
)

const missingTrackingFlag = "tracking information missing, flagged for follow-up"

type Service interface {
	// AppendStatus appends a tracking event after validating the
	// forward-or-cancel transition rule. Transitioning into shipped
	// requires carrier and tracking id in the same call.
	AppendStatus(ctx context.Context, orderID string, to Status, message, updatedBy string, tracking *TrackingInfo) error
	// GetByID succeeds only for the order's owner or an admin.
	GetByID(ctx context.Context, orderID, requesterID string, isAdmin bool) (*Order, error)
	// GetByTrackingNumber is the public, unauthenticated lookup; it
	// returns the privacy projection only.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*PublicOrder, error)
	Cancel(ctx context.Context, orderID, requesterID string, isAdmin bool, reason string) error
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	// RepairMissingTracking scans shipped orders with no tracking id and
	// flags each once. Safe to re-run.
	RepairMissingTracking(ctx context.Context, updatedBy string) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AppendStatus(ctx context.Context, orderID string, to Status, message, updatedBy string, tracking *TrackingInfo) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AppendStatus"),
		zap.String("order_id", orderID),
		zap.String("to_status", string(to)),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !CanTransition(o.Status, to) {
		log.Warn("transition rejected", zap.String("from_status", string(o.Status)))
		return ErrInvalidTransition
	}

	if to == StatusShipped {
		if tracking == nil || tracking.Carrier == "" || tracking.TrackingID == "" {
			return ErrTrackingRequired
		}
	} else {
		tracking = nil
	}

	err = s.repo.AppendEvent(ctx, AppendEventParams{
		OrderID:   orderID,
		From:      o.Status,
		To:        to,
		Message:   message,
		UpdatedBy: updatedBy,
		Tracking:  tracking,
	})
	if err != nil {
		return err
	}

	log.Info("status appended", zap.String("from_status", string(o.Status)))
	return nil
}

func (s *service) GetByID(ctx context.Context, orderID, requesterID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != requesterID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*PublicOrder, error) {
	if trackingNumber == "" {
		return nil, ErrOrderNotFound
	}

	o, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	items := make([]PublicItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, PublicItem{
			Name:     item.Name,
			Color:    item.Color,
			Size:     item.Size,
			Quantity: item.Quantity,
		})
	}

	return &PublicOrder{
		TrackingNumber: o.TrackingNumber,
		Status:         o.Status,
		Items:          items,
		City:           o.Shipping.City,
		State:          o.Shipping.State,
		Events:         o.Events,
		CreatedAt:      o.CreatedAt,
	}, nil
}

func (s *service) Cancel(ctx context.Context, orderID, requesterID string, isAdmin bool, reason string) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !isAdmin && o.UserID != requesterID {
		return ErrForbidden
	}

	if !CanTransition(o.Status, StatusCancelled) {
		return ErrInvalidTransition
	}

	if reason == "" {
		reason = "order cancelled"
	}

	updatedBy := requesterID
	if isAdmin {
		updatedBy = "admin:" + requesterID
	}

	return s.repo.AppendEvent(ctx, AppendEventParams{
		OrderID:   orderID,
		From:      o.Status,
		To:        StatusCancelled,
		Message:   reason,
		UpdatedBy: updatedBy,
	})
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) RepairMissingTracking(ctx context.Context, updatedBy string) ([]string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RepairMissingTracking"),
	)

	orders, err := s.repo.FindShippedMissingTracking(ctx)
	if err != nil {
		return nil, err
	}

	var flagged []string
	for _, o := range orders {
		already, err := s.repo.HasFlagEvent(ctx, o.ID, missingTrackingFlag)
		if err != nil {
			return flagged, err
		}
		if already {
			continue
		}

		// Same-status event: the flag does not move the order forward.
		err = s.repo.AppendEvent(ctx, AppendEventParams{
			OrderID:   o.ID,
			From:      StatusShipped,
			To:        StatusShipped,
			Message:   missingTrackingFlag,
			UpdatedBy: updatedBy,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidTransition) {
				// Status changed under us; the order no longer needs the flag.
				continue
			}
			return flagged, err
		}
		flagged = append(flagged, o.ID)
	}

	log.Info("repair pass done",
		zap.Int("scanned", len(orders)),
		zap.Int("flagged", len(flagged)),
	)
	return flagged, nil
}
