package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/learnora/backend/internal/apperr"
	"github.com/learnora/backend/internal/authz"
	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/model"
	"github.com/learnora/backend/internal/repository"
)

type PaymentService interface {
	List(p authz.Principal) ([]dto.PaymentResponseDTO, error)
	// Create records the purchase attempt and opens a provider checkout
	// session (product → price → session); the session id and link are
	// stored on the payment.
	Create(p authz.Principal, req dto.PaymentCreateDTO) (*dto.PaymentResponseDTO, error)
	// Poll fetches the provider's current view of the payment and writes
	// the status field. It never retries; transient provider failures are
	// the caller's to retry.
	Poll(p authz.Principal, paymentID uint) (*dto.PaymentStatusResponseDTO, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	courseRepo  repository.CourseRepository
	provider    PaymentProvider
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	courseRepo repository.CourseRepository,
	provider PaymentProvider,
) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, courseRepo: courseRepo, provider: provider}
}

func (s *paymentService) List(p authz.Principal) ([]dto.PaymentResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourcePayment, authz.ActionList); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindAllByUser(p.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", p.UserID).Msg("PaymentService.List: repository error")
		return nil, fmt.Errorf("fetching payments: %w", err)
	}

	dtos := make([]dto.PaymentResponseDTO, 0, len(payments))
	for i := range payments {
		var item dto.PaymentResponseDTO
		if err := copier.Copy(&item, &payments[i]); err != nil {
			return nil, fmt.Errorf("preparing payment list response: %w", err)
		}
		dtos = append(dtos, item)
	}
	return dtos, nil
}

func (s *paymentService) Create(p authz.Principal, req dto.PaymentCreateDTO) (*dto.PaymentResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourcePayment, authz.ActionCreate); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("course %d not found", req.CourseID))
		}
		return nil, fmt.Errorf("looking up course %d: %w", req.CourseID, err)
	}

	payment := model.Payment{
		UserID:        p.UserID,
		CourseID:      course.ID,
		Amount:        course.Price,
		PaymentStatus: model.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(&payment); err != nil {
		log.Error().Err(err).Uint("courseID", course.ID).Msg("PaymentService.Create: repository error")
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	productRef, err := s.provider.CreateProduct(course.Title)
	if err != nil {
		return nil, err
	}
	priceRef, err := s.provider.CreatePrice(course.Price, productRef)
	if err != nil {
		return nil, err
	}
	session, err := s.provider.CreateCheckoutSession(priceRef)
	if err != nil {
		return nil, err
	}

	payment.PaymentSession = session.ID
	payment.PaymentLink = session.URL
	if err := s.paymentRepo.Update(&payment); err != nil {
		log.Error().Err(err).Uint("paymentID", payment.ID).Msg("PaymentService.Create: failed to store session details")
		return nil, fmt.Errorf("storing checkout session: %w", err)
	}

	log.Info().
		Uint("paymentID", payment.ID).
		Uint("courseID", course.ID).
		Str("session", session.ID).
		Msg("payment checkout session created")

	var resp dto.PaymentResponseDTO
	if err := copier.Copy(&resp, &payment); err != nil {
		return nil, fmt.Errorf("preparing payment response: %w", err)
	}
	return &resp, nil
}

func (s *paymentService) Poll(p authz.Principal, paymentID uint) (*dto.PaymentStatusResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourcePayment, authz.ActionPoll); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("payment not found")
		}
		return nil, fmt.Errorf("looking up payment %d: %w", paymentID, err)
	}
	if payment.PaymentSession == "" {
		return nil, apperr.ExternalClient("payment has no checkout session", nil)
	}

	intentRef, err := s.provider.RetrieveSessionIntent(payment.PaymentSession)
	if err != nil {
		return nil, err
	}
	intent, err := s.provider.RetrievePaymentIntent(intentRef)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.UpdateStatus(payment.ID, intent.Status); err != nil {
		log.Error().Err(err).Uint("paymentID", payment.ID).Msg("PaymentService.Poll: failed to persist status")
		return nil, fmt.Errorf("storing payment status: %w", err)
	}

	return &dto.PaymentStatusResponseDTO{
		Status:         intent.Status,
		AmountReceived: intent.AmountReceived,
		Currency:       intent.Currency,
	}, nil
}
