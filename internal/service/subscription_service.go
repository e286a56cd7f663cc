package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/learnora/backend/internal/apperr"
	"github.com/learnora/backend/internal/authz"
	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/model"
	"github.com/learnora/backend/internal/repository"
)

// SubscriptionService is the payment-to-subscription activator.
type SubscriptionService interface {
	// Activate transitions a succeeded payment into an active subscription
	// for the paying user and course. Idempotent: repeating the call on
	// the same payment leaves exactly one active subscription row.
	Activate(p authz.Principal, paymentID uint) (*dto.SubscriptionStatusResponseDTO, error)
}

type subscriptionService struct {
	paymentRepo repository.PaymentRepository
	subRepo     repository.SubscriptionRepository
}

func NewSubscriptionService(
	paymentRepo repository.PaymentRepository,
	subRepo repository.SubscriptionRepository,
) SubscriptionService {
	return &subscriptionService{paymentRepo: paymentRepo, subRepo: subRepo}
}

func (s *subscriptionService) Activate(p authz.Principal, paymentID uint) (*dto.SubscriptionStatusResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceSubscription, authz.ActionActivate); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("payment not found")
		}
		return nil, fmt.Errorf("looking up payment %d: %w", paymentID, err)
	}

	if payment.PaymentStatus != model.PaymentStatusSucceeded {
		// Non-terminal or failed payments never touch subscription state.
		return nil, apperr.Validation("payment not successful")
	}

	if err := s.subRepo.Activate(payment.UserID, payment.CourseID); err != nil {
		log.Error().Err(err).
			Uint("paymentID", paymentID).
			Uint("userID", payment.UserID).
			Uint("courseID", payment.CourseID).
			Msg("SubscriptionService.Activate: repository error")
		return nil, fmt.Errorf("activating subscription: %w", err)
	}

	log.Info().
		Uint("paymentID", paymentID).
		Uint("userID", payment.UserID).
		Uint("courseID", payment.CourseID).
		Msg("subscription activated")

	return &dto.SubscriptionStatusResponseDTO{SubscriptionStatus: "Subscription successful"}, nil
}
