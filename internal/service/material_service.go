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
	"github.com/learnora/backend/internal/notify"
	"github.com/learnora/backend/internal/repository"
	"github.com/learnora/backend/internal/validate"
)

type MaterialService interface {
	// List applies the subscription gate: materials of subscribed courses
	// plus materials the principal authored. Anonymous principals are
	// denied outright, not handed an empty list.
	List(p authz.Principal) ([]dto.MaterialResponseDTO, error)
	Create(p authz.Principal, req dto.MaterialDTO) (*dto.MaterialResponseDTO, error)
	Get(p authz.Principal, id uint) (*dto.MaterialResponseDTO, error)
	// Update also fans out one notification per active course subscriber
	// through the async queue; queue failures never fail the update.
	Update(p authz.Principal, id uint, req dto.MaterialDTO) (*dto.MaterialResponseDTO, error)
	Delete(p authz.Principal, id uint) error
}

type materialService struct {
	materialRepo repository.MaterialRepository
	courseRepo   repository.CourseRepository
	subRepo      repository.SubscriptionRepository
	notifier     notify.Notifier
}

func NewMaterialService(
	materialRepo repository.MaterialRepository,
	courseRepo repository.CourseRepository,
	subRepo repository.SubscriptionRepository,
	notifier notify.Notifier,
) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		courseRepo:   courseRepo,
		subRepo:      subRepo,
		notifier:     notifier,
	}
}

func (s *materialService) List(p authz.Principal) ([]dto.MaterialResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceMaterial, authz.ActionList); err != nil {
		return nil, err
	}
	materials, err := s.materialRepo.FindVisible(p.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", p.UserID).Msg("MaterialService.List: repository error")
		return nil, fmt.Errorf("fetching materials: %w", err)
	}

	dtos := make([]dto.MaterialResponseDTO, 0, len(materials))
	for _, material := range materials {
		var item dto.MaterialResponseDTO
		if err := copier.Copy(&item, &material); err != nil {
			return nil, fmt.Errorf("preparing material list response: %w", err)
		}
		dtos = append(dtos, item)
	}
	return dtos, nil
}

func (s *materialService) Create(p authz.Principal, req dto.MaterialDTO) (*dto.MaterialResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceMaterial, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validate.CheckMaterialContent(req.Description, req.VideoURL); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("course %d not found", req.CourseID))
		}
		return nil, fmt.Errorf("looking up course %d: %w", req.CourseID, err)
	}

	owner := p.UserID
	material := model.Material{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
		VideoURL:    req.VideoURL,
		OwnerID:     &owner,
	}
	if err := s.materialRepo.Create(&material); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("MaterialService.Create: repository error")
		return nil, fmt.Errorf("creating material: %w", err)
	}

	var resp dto.MaterialResponseDTO
	if err := copier.Copy(&resp, &material); err != nil {
		return nil, fmt.Errorf("preparing material response: %w", err)
	}
	return &resp, nil
}

func (s *materialService) Get(p authz.Principal, id uint) (*dto.MaterialResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceMaterial, authz.ActionRetrieve); err != nil {
		return nil, err
	}
	material, err := s.findMaterial(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeObject(p, material.OwnerID); err != nil {
		return nil, err
	}

	var resp dto.MaterialResponseDTO
	if err := copier.Copy(&resp, material); err != nil {
		return nil, fmt.Errorf("preparing material response: %w", err)
	}
	return &resp, nil
}

func (s *materialService) Update(p authz.Principal, id uint, req dto.MaterialDTO) (*dto.MaterialResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceMaterial, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if err := validate.CheckMaterialContent(req.Description, req.VideoURL); err != nil {
		return nil, err
	}
	material, err := s.findMaterial(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeObject(p, material.OwnerID); err != nil {
		return nil, err
	}

	material.Title = req.Title
	material.Description = req.Description
	material.VideoURL = req.VideoURL
	if req.CourseID != 0 {
		material.CourseID = req.CourseID
	}
	if err := s.materialRepo.Update(material); err != nil {
		log.Error().Err(err).Uint("materialID", id).Msg("MaterialService.Update: repository error")
		return nil, fmt.Errorf("updating material: %w", err)
	}

	s.notifySubscribers(material)

	var resp dto.MaterialResponseDTO
	if err := copier.Copy(&resp, material); err != nil {
		return nil, fmt.Errorf("preparing material response: %w", err)
	}
	return &resp, nil
}

func (s *materialService) Delete(p authz.Principal, id uint) error {
	if err := authz.Authorize(p, authz.ResourceMaterial, authz.ActionDelete); err != nil {
		return err
	}
	material, err := s.findMaterial(id)
	if err != nil {
		return err
	}
	if err := authz.AuthorizeObject(p, material.OwnerID); err != nil {
		return err
	}
	if err := s.materialRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("materialID", id).Msg("MaterialService.Delete: repository error")
		return fmt.Errorf("deleting material: %w", err)
	}
	return nil
}

// notifySubscribers produces one queued message per active subscriber of
// the material's course. Best-effort: lookup failures are logged and the
// update succeeds regardless.
func (s *materialService) notifySubscribers(material *model.Material) {
	emails, err := s.subRepo.SubscriberEmails(material.CourseID)
	if err != nil {
		log.Error().Err(err).Uint("courseID", material.CourseID).Msg("MaterialService: failed to load subscribers for notification")
		return
	}
	for _, email := range emails {
		s.notifier.Enqueue(notify.Message{
			RecipientEmail: email,
			Title:          material.Title,
		})
	}
}

func (s *materialService) findMaterial(id uint) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("material %d not found", id))
		}
		return nil, fmt.Errorf("looking up material %d: %w", id, err)
	}
	return material, nil
}
