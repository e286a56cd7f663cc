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

// StudentAnswerService grades submissions and manages the graded records.
// Correctness is a pure text-equality check against the test's flagged
// correct option; the submitting principal is always taken from the
// request context, never from the payload.
type StudentAnswerService interface {
	Submit(p authz.Principal, req dto.StudentAnswerSubmitDTO) (*dto.StudentAnswerResponseDTO, error)
	// SubmitBatch grades each answer independently and persists the whole
	// batch atomically.
	SubmitBatch(p authz.Principal, req dto.StudentAnswerBatchDTO) ([]dto.StudentAnswerResponseDTO, error)
	// List is role-filtered: teachers see every answer, students only
	// their own. The optional material filter narrows to that material's
	// tests.
	List(p authz.Principal, materialID *uint) ([]dto.StudentAnswerResponseDTO, error)
	Update(p authz.Principal, id uint, req dto.StudentAnswerUpdateDTO) (*dto.StudentAnswerResponseDTO, error)
	Delete(p authz.Principal, id uint) error
}

type studentAnswerService struct {
	answerRepo repository.StudentAnswerRepository
	testRepo   repository.TestRepository
}

func NewStudentAnswerService(
	answerRepo repository.StudentAnswerRepository,
	testRepo repository.TestRepository,
) StudentAnswerService {
	return &studentAnswerService{answerRepo: answerRepo, testRepo: testRepo}
}

func (s *studentAnswerService) Submit(p authz.Principal, req dto.StudentAnswerSubmitDTO) (*dto.StudentAnswerResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceStudentAnswer, authz.ActionCreate); err != nil {
		return nil, err
	}
	answer, err := s.grade(p, req)
	if err != nil {
		return nil, err
	}
	if err := s.answerRepo.Create(answer); err != nil {
		log.Error().Err(err).Uint("testID", req.TestID).Msg("StudentAnswerService.Submit: repository error")
		return nil, fmt.Errorf("storing answer: %w", err)
	}
	return toAnswerResponse(answer)
}

func (s *studentAnswerService) SubmitBatch(p authz.Principal, req dto.StudentAnswerBatchDTO) ([]dto.StudentAnswerResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceStudentAnswer, authz.ActionCreate); err != nil {
		return nil, err
	}

	answers := make([]model.StudentAnswer, 0, len(req.Answers))
	for _, item := range req.Answers {
		answer, err := s.grade(p, item)
		if err != nil {
			// Any bad entry fails the whole batch before persistence.
			return nil, err
		}
		answers = append(answers, *answer)
	}

	if err := s.answerRepo.CreateAll(answers); err != nil {
		log.Error().Err(err).Int("count", len(answers)).Msg("StudentAnswerService.SubmitBatch: repository error")
		return nil, fmt.Errorf("storing answer batch: %w", err)
	}

	dtos := make([]dto.StudentAnswerResponseDTO, 0, len(answers))
	for i := range answers {
		resp, err := toAnswerResponse(&answers[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *resp)
	}
	return dtos, nil
}

// grade computes the record to persist. The correct option is the
// lowest-id option flagged correct; a test without one grades everything
// as incorrect.
func (s *studentAnswerService) grade(p authz.Principal, req dto.StudentAnswerSubmitDTO) (*model.StudentAnswer, error) {
	if _, err := s.testRepo.FindByID(req.TestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("test %d not found", req.TestID))
		}
		return nil, fmt.Errorf("looking up test %d: %w", req.TestID, err)
	}

	isCorrect := false
	correct, err := s.testRepo.FindCorrectOption(req.TestID)
	switch {
	case err == nil:
		// Comparison is by answer text: the client only ever sees text.
		isCorrect = correct.AnswerText == req.SelectedAnswer
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No flagged option; nothing can match.
	default:
		return nil, fmt.Errorf("looking up correct option for test %d: %w", req.TestID, err)
	}

	return &model.StudentAnswer{
		StudentID:      p.UserID,
		TestID:         req.TestID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      isCorrect,
	}, nil
}

func (s *studentAnswerService) List(p authz.Principal, materialID *uint) ([]dto.StudentAnswerResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceStudentAnswer, authz.ActionList); err != nil {
		return nil, err
	}

	var (
		answers []model.StudentAnswer
		err     error
	)
	if p.IsTeacher() {
		answers, err = s.answerRepo.FindAll(materialID)
	} else {
		answers, err = s.answerRepo.FindByStudent(p.UserID, materialID)
	}
	if err != nil {
		log.Error().Err(err).Uint("userID", p.UserID).Msg("StudentAnswerService.List: repository error")
		return nil, fmt.Errorf("fetching answers: %w", err)
	}

	dtos := make([]dto.StudentAnswerResponseDTO, 0, len(answers))
	for i := range answers {
		resp, err := toAnswerResponse(&answers[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *resp)
	}
	return dtos, nil
}

func (s *studentAnswerService) Update(p authz.Principal, id uint, req dto.StudentAnswerUpdateDTO) (*dto.StudentAnswerResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceStudentAnswer, authz.ActionUpdate); err != nil {
		return nil, err
	}
	answer, err := s.findAnswer(id)
	if err != nil {
		return nil, err
	}

	answer.SelectedAnswer = req.SelectedAnswer
	// Re-grade so the stored flag keeps matching the stored text.
	regraded, err := s.grade(p, dto.StudentAnswerSubmitDTO{
		TestID:         answer.TestID,
		SelectedAnswer: req.SelectedAnswer,
	})
	if err != nil {
		return nil, err
	}
	answer.IsCorrect = regraded.IsCorrect

	if err := s.answerRepo.Update(answer); err != nil {
		log.Error().Err(err).Uint("answerID", id).Msg("StudentAnswerService.Update: repository error")
		return nil, fmt.Errorf("updating answer: %w", err)
	}
	return toAnswerResponse(answer)
}

func (s *studentAnswerService) Delete(p authz.Principal, id uint) error {
	if err := authz.Authorize(p, authz.ResourceStudentAnswer, authz.ActionDelete); err != nil {
		return err
	}
	if _, err := s.findAnswer(id); err != nil {
		return err
	}
	if err := s.answerRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("answerID", id).Msg("StudentAnswerService.Delete: repository error")
		return fmt.Errorf("deleting answer: %w", err)
	}
	return nil
}

func (s *studentAnswerService) findAnswer(id uint) (*model.StudentAnswer, error) {
	answer, err := s.answerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("student answer %d not found", id))
		}
		return nil, fmt.Errorf("looking up answer %d: %w", id, err)
	}
	return answer, nil
}

func toAnswerResponse(answer *model.StudentAnswer) (*dto.StudentAnswerResponseDTO, error) {
	var resp dto.StudentAnswerResponseDTO
	if err := copier.Copy(&resp, answer); err != nil {
		return nil, fmt.Errorf("preparing answer response: %w", err)
	}
	return &resp, nil
}
