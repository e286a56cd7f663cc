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

type TestService interface {
	// List is subscription-gated: teachers see tests on their own
	// materials, students see tests on materials of subscribed courses.
	// The optional material filter narrows the visible set only; asking
	// for a non-visible material yields an empty list, not an error.
	List(p authz.Principal, materialID *uint) ([]dto.TestResponseDTO, error)
	Get(p authz.Principal, id uint) (*dto.TestResponseDTO, error)
	Create(p authz.Principal, req dto.TestDTO) (*dto.TestResponseDTO, error)
	Update(p authz.Principal, id uint, req dto.TestDTO) (*dto.TestResponseDTO, error)
	Delete(p authz.Principal, id uint) error
}

type testService struct {
	testRepo     repository.TestRepository
	materialRepo repository.MaterialRepository
	subRepo      repository.SubscriptionRepository
}

func NewTestService(
	testRepo repository.TestRepository,
	materialRepo repository.MaterialRepository,
	subRepo repository.SubscriptionRepository,
) TestService {
	return &testService{testRepo: testRepo, materialRepo: materialRepo, subRepo: subRepo}
}

func (s *testService) List(p authz.Principal, materialID *uint) ([]dto.TestResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceTest, authz.ActionList); err != nil {
		return nil, err
	}

	var (
		tests []model.Test
		err   error
	)
	if p.IsTeacher() {
		tests, err = s.testRepo.FindOwnedByTeacher(p.UserID, materialID)
	} else {
		tests, err = s.testRepo.FindVisibleForStudent(p.UserID, materialID)
	}
	if err != nil {
		log.Error().Err(err).Uint("userID", p.UserID).Msg("TestService.List: repository error")
		return nil, fmt.Errorf("fetching tests: %w", err)
	}

	dtos := make([]dto.TestResponseDTO, 0, len(tests))
	for _, test := range tests {
		dtos = append(dtos, toTestResponse(&test))
	}
	return dtos, nil
}

func (s *testService) Get(p authz.Principal, id uint) (*dto.TestResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceTest, authz.ActionRetrieve); err != nil {
		return nil, err
	}
	test, err := s.findTestWithOptions(id)
	if err != nil {
		return nil, err
	}
	visible, err := s.isVisible(p, test)
	if err != nil {
		return nil, err
	}
	if !visible {
		// Same shape as a filtered-out list entry: the test does not exist
		// for this principal.
		return nil, apperr.NotFound(fmt.Sprintf("test %d not found", id))
	}

	resp := toTestResponse(test)
	return &resp, nil
}

func (s *testService) Create(p authz.Principal, req dto.TestDTO) (*dto.TestResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceTest, authz.ActionCreate); err != nil {
		return nil, err
	}
	if _, err := s.findMaterial(req.MaterialID); err != nil {
		return nil, err
	}

	owner := p.UserID
	test := model.Test{
		Question:   req.Question,
		MaterialID: req.MaterialID,
		OwnerID:    &owner,
	}
	for _, opt := range req.AnswerOptions {
		test.AnswerOptions = append(test.AnswerOptions, model.AnswerOption{
			AnswerText: opt.AnswerText,
			IsCorrect:  opt.IsCorrect,
			OwnerID:    &owner,
		})
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("question", req.Question).Msg("TestService.Create: repository error")
		return nil, fmt.Errorf("creating test: %w", err)
	}

	resp := toTestResponse(&test)
	return &resp, nil
}

func (s *testService) Update(p authz.Principal, id uint, req dto.TestDTO) (*dto.TestResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceTest, authz.ActionUpdate); err != nil {
		return nil, err
	}
	test, err := s.findTestWithOptions(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeObject(p, test.OwnerID); err != nil {
		return nil, err
	}

	test.Question = req.Question
	if req.MaterialID != 0 {
		if _, err := s.findMaterial(req.MaterialID); err != nil {
			return nil, err
		}
		test.MaterialID = req.MaterialID
	}
	// Save only scalar columns here; options are replaced separately so
	// stale rows do not linger.
	options := test.AnswerOptions
	test.AnswerOptions = nil
	if err := s.testRepo.Update(test); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("TestService.Update: repository error")
		return nil, fmt.Errorf("updating test: %w", err)
	}

	if len(req.AnswerOptions) > 0 {
		owner := p.UserID
		replacement := make([]model.AnswerOption, 0, len(req.AnswerOptions))
		for _, opt := range req.AnswerOptions {
			replacement = append(replacement, model.AnswerOption{
				AnswerText: opt.AnswerText,
				IsCorrect:  opt.IsCorrect,
				OwnerID:    &owner,
			})
		}
		if err := s.testRepo.ReplaceOptions(id, replacement); err != nil {
			log.Error().Err(err).Uint("testID", id).Msg("TestService.Update: failed to replace answer options")
			return nil, fmt.Errorf("replacing answer options: %w", err)
		}
		test.AnswerOptions = replacement
	} else {
		test.AnswerOptions = options
	}

	resp := toTestResponse(test)
	return &resp, nil
}

func (s *testService) Delete(p authz.Principal, id uint) error {
	if err := authz.Authorize(p, authz.ResourceTest, authz.ActionDelete); err != nil {
		return err
	}
	test, err := s.findTestWithOptions(id)
	if err != nil {
		return err
	}
	if err := authz.AuthorizeObject(p, test.OwnerID); err != nil {
		return err
	}
	if err := s.testRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("TestService.Delete: repository error")
		return fmt.Errorf("deleting test: %w", err)
	}
	return nil
}

// isVisible mirrors the list visibility rule for single retrieval.
func (s *testService) isVisible(p authz.Principal, test *model.Test) (bool, error) {
	material, err := s.materialRepo.FindByID(test.MaterialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up material %d: %w", test.MaterialID, err)
	}

	if p.IsTeacher() {
		return material.OwnerID != nil && *material.OwnerID == p.UserID, nil
	}
	if material.OwnerID != nil && *material.OwnerID == p.UserID {
		return true, nil
	}

	sub, err := s.subRepo.FindByUserAndCourse(p.UserID, material.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up subscription: %w", err)
	}
	return sub.IsSubscribed, nil
}

func (s *testService) findTestWithOptions(id uint) (*model.Test, error) {
	test, err := s.testRepo.FindByIDWithOptions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("test %d not found", id))
		}
		return nil, fmt.Errorf("looking up test %d: %w", id, err)
	}
	return test, nil
}

func (s *testService) findMaterial(id uint) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("material %d not found", id))
		}
		return nil, fmt.Errorf("looking up material %d: %w", id, err)
	}
	return material, nil
}

// toTestResponse maps a test onto its client view. The correctness flag
// never leaves the server.
func toTestResponse(test *model.Test) dto.TestResponseDTO {
	resp := dto.TestResponseDTO{
		ID:            test.ID,
		Question:      test.Question,
		MaterialID:    test.MaterialID,
		AnswerOptions: make([]dto.AnswerOptionResponseDTO, 0, len(test.AnswerOptions)),
	}
	for _, opt := range test.AnswerOptions {
		resp.AnswerOptions = append(resp.AnswerOptions, dto.AnswerOptionResponseDTO{
			ID:         opt.ID,
			AnswerText: opt.AnswerText,
		})
	}
	return resp
}
