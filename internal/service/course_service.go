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

type CourseService interface {
	// List is the public catalog; anonymous principals may call it.
	List(p authz.Principal) ([]dto.CourseResponseDTO, error)
	Create(p authz.Principal, req dto.CourseDTO) (*dto.CourseResponseDTO, error)
	Get(p authz.Principal, id uint) (*dto.CourseResponseDTO, error)
	Update(p authz.Principal, id uint, req dto.CourseDTO) (*dto.CourseResponseDTO, error)
	Delete(p authz.Principal, id uint) error
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) List(p authz.Principal) ([]dto.CourseResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceCourse, authz.ActionList); err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("CourseService.List: repository error")
		return nil, fmt.Errorf("fetching courses: %w", err)
	}

	dtos := make([]dto.CourseResponseDTO, 0, len(courses))
	for _, course := range courses {
		var item dto.CourseResponseDTO
		if err := copier.Copy(&item, &course); err != nil {
			return nil, fmt.Errorf("preparing course list response: %w", err)
		}
		dtos = append(dtos, item)
	}
	return dtos, nil
}

func (s *courseService) Create(p authz.Principal, req dto.CourseDTO) (*dto.CourseResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceCourse, authz.ActionCreate); err != nil {
		return nil, err
	}

	owner := p.UserID
	course := model.Course{
		Title:       req.Title,
		Description: req.Description,
		Preview:     req.Preview,
		Price:       req.Price,
		OwnerID:     &owner,
	}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CourseService.Create: repository error")
		return nil, fmt.Errorf("creating course: %w", err)
	}

	var resp dto.CourseResponseDTO
	if err := copier.Copy(&resp, &course); err != nil {
		return nil, fmt.Errorf("preparing course response: %w", err)
	}
	return &resp, nil
}

func (s *courseService) Get(p authz.Principal, id uint) (*dto.CourseResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceCourse, authz.ActionRetrieve); err != nil {
		return nil, err
	}
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeObject(p, course.OwnerID); err != nil {
		return nil, err
	}

	var resp dto.CourseResponseDTO
	if err := copier.Copy(&resp, course); err != nil {
		return nil, fmt.Errorf("preparing course response: %w", err)
	}
	return &resp, nil
}

func (s *courseService) Update(p authz.Principal, id uint, req dto.CourseDTO) (*dto.CourseResponseDTO, error) {
	if err := authz.Authorize(p, authz.ResourceCourse, authz.ActionUpdate); err != nil {
		return nil, err
	}
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeObject(p, course.OwnerID); err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Preview = req.Preview
	course.Price = req.Price
	if err := s.courseRepo.Update(course); err != nil {
		log.Error().Err(err).Uint("courseID", id).Msg("CourseService.Update: repository error")
		return nil, fmt.Errorf("updating course: %w", err)
	}

	var resp dto.CourseResponseDTO
	if err := copier.Copy(&resp, course); err != nil {
		return nil, fmt.Errorf("preparing course response: %w", err)
	}
	return &resp, nil
}

func (s *courseService) Delete(p authz.Principal, id uint) error {
	if err := authz.Authorize(p, authz.ResourceCourse, authz.ActionDelete); err != nil {
		return err
	}
	course, err := s.findCourse(id)
	if err != nil {
		return err
	}
	if err := authz.AuthorizeObject(p, course.OwnerID); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("courseID", id).Msg("CourseService.Delete: repository error")
		return fmt.Errorf("deleting course: %w", err)
	}
	return nil
}

func (s *courseService) findCourse(id uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("course %d not found", id))
		}
		return nil, fmt.Errorf("looking up course %d: %w", id, err)
	}
	return course, nil
}
