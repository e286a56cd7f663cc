package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/service"
)

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(courseService service.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// List godoc
// @Summary List courses (public catalog)
// @Tags Courses
// @Produce json
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.List(principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// Create godoc
// @Summary Create a course
// @Description Teacher-only. The creating teacher becomes the owner.
// @Tags Courses
// @Accept json
// @Produce json
// @Param course body dto.CourseDTO true "Course data"
// @Security BearerAuth
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CourseDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	course, err := c.courseService.Create(principalFrom(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// Get godoc
// @Summary Retrieve a course
// @Tags Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Security BearerAuth
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course_id")
	if !ok {
		return
	}
	course, err := c.courseService.Get(principalFrom(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// Update godoc
// @Summary Update a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param course body dto.CourseDTO true "Course data"
// @Security BearerAuth
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.CourseDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	course, err := c.courseService.Update(principalFrom(ctx), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// Delete godoc
// @Summary Delete a course and everything beneath it
// @Tags Courses
// @Param course_id path int true "Course ID"
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course_id")
	if !ok {
		return
	}
	if err := c.courseService.Delete(principalFrom(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
