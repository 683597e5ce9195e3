package service

import (
	"errors"
	"testing"

	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/repository"
	"github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"
)

// fakePayments testlerde Stripe yerine geçer
type fakePayments struct {
	sessions   map[string]*stripe.CheckoutSession
	createErr  error
	lastCreate *stripe.CheckoutSession
}

func (f *fakePayments) CreateGiftCheckoutSession(amount int64, currency string, productName string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	session := &stripe.CheckoutSession{
		ID:          "cs_test_created",
		AmountTotal: amount,
		Currency:    stripe.Currency(currency),
		Metadata:    metadata,
		URL:         "https://checkout.test/cs_test_created",
	}
	f.lastCreate = session
	return session, nil
}

func (f *fakePayments) GetCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}

func newGiftFixture(t *testing.T) (*gorm.DB, *GiftService, *fakePayments) {
	t.Helper()

	db := newTestDB(t)
	payments := &fakePayments{sessions: map[string]*stripe.CheckoutSession{}}

	svc := NewGiftService(
		repository.NewGiftRepository(db),
		repository.NewEventRepository(db),
		payments,
	)
	return db, svc, payments
}

func paidSession(id string, eventID string, amount int64) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            id,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:   amount,
		Currency:      stripe.CurrencyUSD,
		Metadata: map[string]string{
			"event_id":   eventID,
			"guest_name": "Ayşe",
			"message":    "Mutluluklar!",
		},
	}
}

func TestCreateCheckoutWritesNoRow(t *testing.T) {
	db, svc, payments := newGiftFixture(t)
	event := createTestEvent(t, db, nil)

	session, err := svc.CreateCheckout(event.URL, nil, models.GiftCheckoutRequest{
		Amount:    5000,
		Currency:  "usd",
		GuestName: "Ayşe",
		Message:   "Mutluluklar!",
	})
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}
	if session.URL == "" {
		t.Error("expected checkout session URL")
	}
	if payments.lastCreate.Metadata["guest_name"] != "Ayşe" {
		t.Errorf("metadata guest_name = %q", payments.lastCreate.Metadata["guest_name"])
	}

	// Satır sadece doğrulamada yazılır
	var count int64
	db.Model(&models.Gift{}).Count(&count)
	if count != 0 {
		t.Errorf("gift rows after checkout = %d, want 0", count)
	}
}

func TestVerifyPaymentUnpaid(t *testing.T) {
	db, svc, payments := newGiftFixture(t)
	createTestEvent(t, db, nil)

	payments.sessions["cs_unpaid"] = &stripe.CheckoutSession{
		ID:            "cs_unpaid",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
		AmountTotal:   5000,
	}

	_, err := svc.VerifyPayment(models.VerifyPaymentRequest{
		TransactionID:  "cs_unpaid",
		ExpectedAmount: 5000,
	})
	if !errors.Is(err, ErrPaymentNotVerified) {
		t.Fatalf("VerifyPayment() error = %v, want ErrPaymentNotVerified", err)
	}

	var count int64
	db.Model(&models.Gift{}).Count(&count)
	if count != 0 {
		t.Errorf("gift rows = %d, want 0", count)
	}
}

func TestVerifyPaymentUnknownTransaction(t *testing.T) {
	_, svc, _ := newGiftFixture(t)

	_, err := svc.VerifyPayment(models.VerifyPaymentRequest{
		TransactionID:  "cs_missing",
		ExpectedAmount: 5000,
	})
	if !errors.Is(err, ErrPaymentNotVerified) {
		t.Errorf("VerifyPayment() error = %v, want ErrPaymentNotVerified", err)
	}
}

func TestVerifyPaymentAmountShort(t *testing.T) {
	db, svc, payments := newGiftFixture(t)
	createTestEvent(t, db, nil)

	payments.sessions["cs_short"] = paidSession("cs_short", "1", 4000)

	_, err := svc.VerifyPayment(models.VerifyPaymentRequest{
		TransactionID:  "cs_short",
		ExpectedAmount: 5000,
	})
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("VerifyPayment() error = %v, want ErrAmountMismatch", err)
	}

	var count int64
	db.Model(&models.Gift{}).Count(&count)
	if count != 0 {
		t.Errorf("gift rows = %d, want 0", count)
	}
}

func TestVerifyPaymentSuccess(t *testing.T) {
	db, svc, payments := newGiftFixture(t)
	event := createTestEvent(t, db, nil)

	payments.sessions["cs_paid"] = paidSession("cs_paid", "1", 5000)

	resp, err := svc.VerifyPayment(models.VerifyPaymentRequest{
		TransactionID:  "cs_paid",
		ExpectedAmount: 5000,
	})
	if err != nil {
		t.Fatalf("VerifyPayment() error = %v", err)
	}

	if resp.Status != models.GiftStatusCompleted {
		t.Errorf("status = %s, want %s", resp.Status, models.GiftStatusCompleted)
	}
	if resp.EventID != event.ID {
		t.Errorf("event ID = %d, want %d", resp.EventID, event.ID)
	}

	var gift models.Gift
	if err := db.Where("payment_ref = ?", "cs_paid").First(&gift).Error; err != nil {
		t.Fatalf("expected persisted gift: %v", err)
	}
	if gift.Amount != 5000 || gift.GuestName != "Ayşe" || gift.Status != models.GiftStatusCompleted {
		t.Errorf("gift row = %+v", gift)
	}
	if gift.SenderID != nil {
		t.Error("guest gift should have nil sender")
	}
}

func TestVerifyPaymentOverpaymentAccepted(t *testing.T) {
	db, svc, payments := newGiftFixture(t)
	createTestEvent(t, db, nil)

	payments.sessions["cs_over"] = paidSession("cs_over", "1", 6000)

	resp, err := svc.VerifyPayment(models.VerifyPaymentRequest{
		TransactionID:  "cs_over",
		ExpectedAmount: 5000,
	})
	if err != nil {
		t.Fatalf("VerifyPayment() error = %v", err)
	}
	if resp.Amount != 6000 {
		t.Errorf("amount = %d, want 6000", resp.Amount)
	}
}

func TestVerifyPaymentIdempotent(t *testing.T) {
	db, svc, payments := newGiftFixture(t)
	createTestEvent(t, db, nil)

	payments.sessions["cs_repeat"] = paidSession("cs_repeat", "1", 5000)

	req := models.VerifyPaymentRequest{TransactionID: "cs_repeat", ExpectedAmount: 5000}
	if _, err := svc.VerifyPayment(req); err != nil {
		t.Fatalf("first VerifyPayment() error = %v", err)
	}
	if _, err := svc.VerifyPayment(req); err != nil {
		t.Fatalf("second VerifyPayment() error = %v", err)
	}

	var count int64
	db.Model(&models.Gift{}).Where("payment_ref = ?", "cs_repeat").Count(&count)
	if count != 1 {
		t.Errorf("gift rows for transaction = %d, want 1", count)
	}
}

func TestGetEventGiftsOwnership(t *testing.T) {
	db, svc, payments := newGiftFixture(t)
	event := createTestEvent(t, db, nil)

	payments.sessions["cs_list"] = paidSession("cs_list", "1", 2500)
	if _, err := svc.VerifyPayment(models.VerifyPaymentRequest{
		TransactionID:  "cs_list",
		ExpectedAmount: 2500,
	}); err != nil {
		t.Fatalf("VerifyPayment() error = %v", err)
	}

	gifts, err := svc.GetEventGifts(event.ID, event.UserID)
	if err != nil {
		t.Fatalf("GetEventGifts() error = %v", err)
	}
	if len(gifts) != 1 {
		t.Errorf("gifts = %d, want 1", len(gifts))
	}

	if _, err := svc.GetEventGifts(event.ID, 99); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("GetEventGifts() non-owner error = %v, want ErrUnauthorized", err)
	}
}
