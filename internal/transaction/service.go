package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/grana-app/grana/internal/notification"
)

// Service exposes owner-scoped transaction operations and publishes a change
// event after each successful mutation.
type Service struct {
	repo     Repository
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds a transaction service instance.
func NewService(repo Repository, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// List returns the caller's transactions ordered by date descending.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Transaction, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create stores a new transaction for the caller and returns the row with its
// assigned id.
func (s *Service) Create(ctx context.Context, ownerID int64, input Input) (Transaction, error) {
	t, err := s.repo.Create(ctx, ownerID, input)
	if err != nil {
		return Transaction{}, err
	}
	s.publish(ctx, notification.ActionCreated, t.ID, ownerID)
	return t, nil
}

// Update rewrites the mutable fields of the caller's transaction. A missing
// row and a row owned by someone else both return ErrNotFound.
func (s *Service) Update(ctx context.Context, ownerID, id int64, input Input) (Transaction, error) {
	t, err := s.repo.Update(ctx, ownerID, id, input)
	if err != nil {
		return Transaction{}, err
	}
	s.publish(ctx, notification.ActionUpdated, t.ID, ownerID)
	return t, nil
}

// Delete removes the caller's transaction under the same match rule as Update.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.publish(ctx, notification.ActionDeleted, id, ownerID)
	return nil
}

// publish is best effort: event delivery never fails a mutation.
func (s *Service) publish(ctx context.Context, action string, id, ownerID int64) {
	if s.notifier == nil {
		return
	}
	msg := notification.Message{
		Action:        action,
		TransactionID: id,
		UserID:        ownerID,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.notifier.Send(ctx, msg); err != nil && s.logger != nil {
		s.logger.Warn("publish transaction event", "action", action, "transaction_id", id, "error", err)
	}
}
