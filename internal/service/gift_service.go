package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/repository"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentProvider Stripe checkout erişimini soyutlar
type PaymentProvider interface {
	CreateGiftCheckoutSession(amount int64, currency string, productName string, metadata map[string]string) (*stripe.CheckoutSession, error)
	GetCheckoutSession(sessionID string) (*stripe.CheckoutSession, error)
}

type GiftService struct {
	giftRepo  *repository.GiftRepository
	eventRepo *repository.EventRepository
	payments  PaymentProvider
}

func NewGiftService(
	giftRepo *repository.GiftRepository,
	eventRepo *repository.EventRepository,
	payments PaymentProvider,
) *GiftService {
	return &GiftService{
		giftRepo:  giftRepo,
		eventRepo: eventRepo,
		payments:  payments,
	}
}

// CreateCheckout hediye ödemesi için checkout session başlatır. Gift satırı
// burada YAZILMAZ; satır sadece ödeme doğrulaması başarılı olunca, session
// metadata'sındaki bilgilerle oluşturulur.
func (s *GiftService) CreateCheckout(eventURL string, senderID *uint, req models.GiftCheckoutRequest) (*stripe.CheckoutSession, error) {
	event, err := s.eventRepo.GetByURL(eventURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	metadata := map[string]string{
		"event_id":   strconv.FormatUint(uint64(event.ID), 10),
		"guest_name": req.GuestName,
		"message":    req.Message,
	}
	if senderID != nil {
		metadata["sender_id"] = strconv.FormatUint(uint64(*senderID), 10)
	}

	productName := fmt.Sprintf("Gift for %s", event.Title)

	session, err := s.payments.CreateGiftCheckoutSession(req.Amount, req.Currency, productName, metadata)
	if err != nil {
		return nil, err
	}

	zap.L().Info("gift checkout created",
		zap.Uint("event_id", event.ID),
		zap.String("session_id", session.ID),
		zap.Int64("amount", req.Amount),
	)

	return session, nil
}

// VerifyPayment ödeme sağlayıcısının callback'inden gelen transaction'ı
// doğrular. Kabul koşulu: ödeme başarılı VE ödenen tutar beklenen tutardan
// az değil. Kabulde Gift satırı session metadata'sından oluşturulur.
// Doğrulama başarılı ama kayıt başarısızsa bu ayrı bir durumdur: ödeme
// alındı ama kaydedilmedi, otomatik retry yok, mutabakat operasyona kalır.
func (s *GiftService) VerifyPayment(req models.VerifyPaymentRequest) (*models.VerifiedPaymentResponse, error) {
	session, err := s.payments.GetCheckoutSession(req.TransactionID)
	if err != nil {
		return nil, ErrPaymentNotVerified
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, ErrPaymentNotVerified
	}

	if session.AmountTotal < req.ExpectedAmount {
		zap.L().Warn("gift payment amount short",
			zap.String("session_id", session.ID),
			zap.Int64("paid", session.AmountTotal),
			zap.Int64("expected", req.ExpectedAmount),
		)
		return nil, ErrAmountMismatch
	}

	// Metadata ödeme isteğine gömülmüştü
	eventID, err := strconv.ParseUint(session.Metadata["event_id"], 10, 32)
	if err != nil {
		return nil, ErrPaymentNotVerified
	}

	var senderID *uint
	if raw, ok := session.Metadata["sender_id"]; ok && raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			id := uint(parsed)
			senderID = &id
		}
	}

	// Aynı transaction için tekrar çağrı: mevcut kaydı döndür
	if existing, err := s.giftRepo.GetByPaymentRef(session.ID); err == nil {
		return verifiedResponse(session, existing), nil
	}

	gift := &models.Gift{
		EventID:    uint(eventID),
		SenderID:   senderID,
		GuestName:  session.Metadata["guest_name"],
		Amount:     session.AmountTotal,
		Currency:   string(session.Currency),
		Message:    session.Metadata["message"],
		PaymentRef: session.ID,
		Status:     models.GiftStatusCompleted,
	}

	if err := s.giftRepo.Create(gift); err != nil {
		zap.L().Error("payment verified but gift not recorded",
			zap.String("session_id", session.ID),
			zap.Uint64("event_id", eventID),
			zap.Error(err),
		)
		return nil, ErrGiftNotRecorded
	}

	return verifiedResponse(session, gift), nil
}

// GetEventGifts etkinliğin hediyelerini sahibi için listeler
func (s *GiftService) GetEventGifts(eventID uint, userID uint) ([]models.Gift, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.UserID != userID {
		return nil, ErrUnauthorized
	}

	return s.giftRepo.GetByEventID(eventID)
}

func verifiedResponse(session *stripe.CheckoutSession, gift *models.Gift) *models.VerifiedPaymentResponse {
	return &models.VerifiedPaymentResponse{
		TransactionID: session.ID,
		Amount:        session.AmountTotal,
		Currency:      string(session.Currency),
		Status:        gift.Status,
		EventID:       gift.EventID,
		GuestName:     gift.GuestName,
	}
}
