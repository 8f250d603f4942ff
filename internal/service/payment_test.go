package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/repo"
)

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	err          error
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	f.lastAmount = amount
	f.lastCurrency = currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_123", nil
}

type fakeNotifier struct {
	sent chan string
	err  error
}

func (f *fakeNotifier) PaymentConfirmation(ctx context.Context, to, transactionID string) error {
	if f.sent != nil {
		f.sent <- transactionID
	}
	return f.err
}

type failingPaymentStore struct{}

func (failingPaymentStore) InsertPayment(ctx context.Context, p *models.Payment) error {
	return errors.New("store down")
}

func (failingPaymentStore) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	return nil, errors.New("store down")
}

type failingCartStore struct {
	*repo.GormRepo
}

func (failingCartStore) RemoveCartItems(ctx context.Context, email string, ids []uuid.UUID) (int64, error) {
	return 0, errors.New("cleanup down")
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CartItem{}, &models.Payment{}))
	return db
}

func newPaymentService(t *testing.T) (*PaymentService, *gorm.DB, *fakeGateway, *fakeNotifier) {
	t.Helper()
	db := initTestDB(t)
	r := &repo.GormRepo{DB: db}
	gw := &fakeGateway{}
	nf := &fakeNotifier{sent: make(chan string, 1)}
	svc := &PaymentService{
		Payments: r,
		Carts:    r,
		Gateway:  gw,
		Notifier: nf,
	}
	return svc, db, gw, nf
}

func seedCart(t *testing.T, db *gorm.DB, email string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		item := models.CartItem{Email: email, MenuItemID: uuid.New(), Price: 12.5}
		require.NoError(t, db.Create(&item).Error)
		ids = append(ids, item.ID.String())
	}
	return ids
}

func TestCreateIntent(t *testing.T) {
	svc, _, gw, _ := newPaymentService(t)

	secret, err := svc.CreateIntent(context.Background(), 25.00)
	require.NoError(t, err)
	require.Equal(t, "pi_secret_123", secret)
	require.Equal(t, int64(2500), gw.lastAmount)
	require.Equal(t, "usd", gw.lastCurrency)
}

func TestCreateIntentTruncatesMinorUnits(t *testing.T) {
	svc, _, gw, _ := newPaymentService(t)

	_, err := svc.CreateIntent(context.Background(), 10.999)
	require.NoError(t, err)
	require.Equal(t, int64(1099), gw.lastAmount)
}

func TestCreateIntentRejectsNonPositive(t *testing.T) {
	svc, _, _, _ := newPaymentService(t)

	for _, price := range []float64{0, -1, -0.01} {
		_, err := svc.CreateIntent(context.Background(), price)
		require.ErrorIs(t, err, ErrInvalidAmount, "price %v", price)
	}
}

func TestCreateIntentGatewayError(t *testing.T) {
	svc, _, gw, _ := newPaymentService(t)
	gw.err = errors.New("gateway down")

	_, err := svc.CreateIntent(context.Background(), 10)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidAmount)
}

func TestConfirmPaymentHappyPath(t *testing.T) {
	svc, db, _, nf := newPaymentService(t)
	ids := seedCart(t, db, "x@y.com", 2)

	res, err := svc.ConfirmPayment(context.Background(), &models.Payment{
		Email:         "x@y.com",
		Price:         25.00,
		TransactionID: "tx1",
		CartIDs:       ids,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.RemovedCartIDs)
	require.NotEqual(t, uuid.Nil, res.Payment.ID)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("transaction_id = ?", "tx1").Count(&count).Error)
	require.Equal(t, int64(1), count)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("email = ?", "x@y.com").Count(&remaining).Error)
	require.Zero(t, remaining)

	select {
	case tx := <-nf.sent:
		require.Equal(t, "tx1", tx)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation was never dispatched")
	}
}

func TestConfirmPaymentScopesCleanupByEmail(t *testing.T) {
	svc, db, _, _ := newPaymentService(t)
	mine := seedCart(t, db, "x@y.com", 1)
	theirs := seedCart(t, db, "other@y.com", 1)

	res, err := svc.ConfirmPayment(context.Background(), &models.Payment{
		Email:         "x@y.com",
		TransactionID: "tx2",
		CartIDs:       append(mine, theirs...),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.RemovedCartIDs)

	var otherCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("email = ?", "other@y.com").Count(&otherCount).Error)
	require.Equal(t, int64(1), otherCount)
}

func TestConfirmPaymentInsertFailureStopsCleanup(t *testing.T) {
	_, db, gw, nf := newPaymentService(t)
	r := &repo.GormRepo{DB: db}
	svc := &PaymentService{
		Payments: failingPaymentStore{},
		Carts:    r,
		Gateway:  gw,
		Notifier: nf,
	}
	ids := seedCart(t, db, "x@y.com", 2)

	_, err := svc.ConfirmPayment(context.Background(), &models.Payment{
		Email:         "x@y.com",
		TransactionID: "tx3",
		CartIDs:       ids,
	})
	require.ErrorIs(t, err, ErrPersistence)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("email = ?", "x@y.com").Count(&remaining).Error)
	require.Equal(t, int64(2), remaining)

	select {
	case <-nf.sent:
		t.Fatal("no notification may be sent when the record was lost")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConfirmPaymentCleanupFailureStillSucceeds(t *testing.T) {
	svc, db, _, _ := newPaymentService(t)
	svc.Carts = failingCartStore{&repo.GormRepo{DB: db}}
	ids := seedCart(t, db, "x@y.com", 2)

	res, err := svc.ConfirmPayment(context.Background(), &models.Payment{
		Email:         "x@y.com",
		TransactionID: "tx4",
		CartIDs:       ids,
	})
	require.NoError(t, err)
	require.Zero(t, res.RemovedCartIDs)
	require.NotEqual(t, uuid.Nil, res.Payment.ID)

	// the record is durable and queryable despite the failed cleanup
	history, err := svc.History(context.Background(), "x@y.com")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "tx4", history[0].TransactionID)
}

func TestConfirmPaymentNotificationFailureInvisible(t *testing.T) {
	svc, db, _, nf := newPaymentService(t)
	nf.err = errors.New("smtp down")
	ids := seedCart(t, db, "x@y.com", 1)

	res, err := svc.ConfirmPayment(context.Background(), &models.Payment{
		Email:         "x@y.com",
		TransactionID: "tx5",
		CartIDs:       ids,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.RemovedCartIDs)
}

func TestConfirmPaymentDuplicateTransaction(t *testing.T) {
	svc, db, _, _ := newPaymentService(t)
	ids := seedCart(t, db, "x@y.com", 1)

	payment := models.Payment{Email: "x@y.com", TransactionID: "tx6", CartIDs: ids}
	first := payment
	_, err := svc.ConfirmPayment(context.Background(), &first)
	require.NoError(t, err)

	second := payment
	second.ID = uuid.Nil
	_, err = svc.ConfirmPayment(context.Background(), &second)
	require.ErrorIs(t, err, ErrDuplicateTxn)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestConfirmPaymentValidation(t *testing.T) {
	svc, _, _, _ := newPaymentService(t)

	_, err := svc.ConfirmPayment(context.Background(), &models.Payment{TransactionID: "tx"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.ConfirmPayment(context.Background(), &models.Payment{Email: "x@y.com"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.ConfirmPayment(context.Background(), &models.Payment{
		Email:         "x@y.com",
		TransactionID: "tx",
		CartIDs:       []string{"not-a-uuid"},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestConfirmPaymentZeroMatchedCartIDs(t *testing.T) {
	svc, _, _, _ := newPaymentService(t)

	res, err := svc.ConfirmPayment(context.Background(), &models.Payment{
		Email:         "x@y.com",
		TransactionID: "tx7",
		CartIDs:       []string{uuid.NewString()},
	})
	require.NoError(t, err)
	require.Zero(t, res.RemovedCartIDs)
}
