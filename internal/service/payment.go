package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restohub/bistro_backend/internal/events"
	"github.com/restohub/bistro_backend/internal/logging"
	"github.com/restohub/bistro_backend/internal/mail"
	"github.com/restohub/bistro_backend/internal/metrics"
	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/payments"
)

const notifyTimeout = 10 * time.Second

type PaymentStore interface {
	InsertPayment(ctx context.Context, payment *models.Payment) error
	ListPayments(ctx context.Context, email string) ([]models.Payment, error)
}

type PaymentService struct {
	Payments PaymentStore
	Carts    CartStore
	Gateway  payments.IntentClient
	Notifier mail.Notifier
	Events   events.Publisher
	Metrics  metrics.Recorder
}

type ConfirmResult struct {
	Payment        *models.Payment
	RemovedCartIDs int64
}

// CreateIntent converts the price to integer minor units and obtains a
// single-use intent from the gateway. No local state is touched, so the
// caller may retry freely.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return "", fmt.Errorf("%w: price must be a positive number", ErrInvalidAmount)
	}

	amount := int64(price * 100)

	secret, err := s.Gateway.CreateIntent(ctx, amount, "usd")
	if err != nil {
		return "", fmt.Errorf("creating payment intent: %w", err)
	}
	if s.Metrics != nil {
		s.Metrics.RecordIntentCreated()
	}
	return secret, nil
}

// ConfirmPayment runs the post-charge sequence: persist the record, clear the
// paid cart items, dispatch the confirmation. Only the first step can fail
// the call — the customer has already been charged, so a lost record is an
// operator incident while stale cart items are merely untidy.
func (s *PaymentService) ConfirmPayment(ctx context.Context, payment *models.Payment) (*ConfirmResult, error) {
	l := logging.FromContext(ctx).With("svc", "payments.confirm", "transaction_id", payment.TransactionID)

	if payment.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if payment.TransactionID == "" {
		return nil, fmt.Errorf("%w: transactionId required", ErrValidation)
	}
	cartIDs, err := parseCartIDs(payment.CartIDs)
	if err != nil {
		return nil, err
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}

	if err := s.Payments.InsertPayment(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("payment_duplicate_transaction")
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTxn, payment.TransactionID)
		}
		if s.Metrics != nil {
			s.Metrics.RecordPaymentInsertFailure()
		}
		// charged externally but not recorded; this line is the reconciliation marker
		l.Error("payment_insert_failed", "email", payment.Email, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	removed, err := s.Carts.RemoveCartItems(ctx, payment.Email, cartIDs)
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.RecordCartCleanupFailure()
		}
		l.Warn("cart_cleanup_failed", "cart_ids", len(cartIDs), "error", err)
		removed = 0
	}

	if s.Metrics != nil {
		s.Metrics.RecordPaymentConfirmed()
	}
	s.dispatchConfirmation(l, payment)

	return &ConfirmResult{Payment: payment, RemovedCartIDs: removed}, nil
}

func (s *PaymentService) History(ctx context.Context, email string) ([]models.Payment, error) {
	return s.Payments.ListPayments(ctx, email)
}

// dispatchConfirmation is fire-and-forget: the request is answered without
// waiting and failures surface only in the logs.
func (s *PaymentService) dispatchConfirmation(l *slog.Logger, payment *models.Payment) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if s.Events != nil {
			event := map[string]interface{}{
				"type":           "payment_confirmed",
				"email":          payment.Email,
				"transaction_id": payment.TransactionID,
				"price":          payment.Price,
			}
			if err := s.Events.PublishEvent(ctx, "payment_events", payment.TransactionID, event); err != nil {
				l.Error("event_publish_failed", "error", err)
			}
		}

		if s.Notifier != nil {
			if err := s.Notifier.PaymentConfirmation(ctx, payment.Email, payment.TransactionID); err != nil {
				if s.Metrics != nil {
					s.Metrics.RecordNotificationFailure()
				}
				l.Error("notification_failed", "email", payment.Email, "error", err)
			}
		}
	}()
}

func parseCartIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bad cart id %q", ErrValidation, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
