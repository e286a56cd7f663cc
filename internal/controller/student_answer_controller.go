package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/service"
)

type StudentAnswerController struct {
	answerService service.StudentAnswerService
}

func NewStudentAnswerController(answerService service.StudentAnswerService) *StudentAnswerController {
	return &StudentAnswerController{answerService: answerService}
}

// Submit godoc
// @Summary Submit an answer for grading
// @Description Student-only. The answer is graded against the test's correct option and stored.
// @Tags Student Answers
// @Accept json
// @Produce json
// @Param answer body dto.StudentAnswerSubmitDTO true "Answer"
// @Security BearerAuth
// @Success 201 {object} dto.StudentAnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /student-answers [post]
func (c *StudentAnswerController) Submit(ctx *gin.Context) {
	var req dto.StudentAnswerSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	answer, err := c.answerService.Submit(principalFrom(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, answer)
}

// SubmitBatch godoc
// @Summary Submit several answers in one atomic batch
// @Description Each answer is graded independently; the batch is stored all-or-nothing.
// @Tags Student Answers
// @Accept json
// @Produce json
// @Param answers body dto.StudentAnswerBatchDTO true "Answer batch"
// @Security BearerAuth
// @Success 201 {array} dto.StudentAnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "A referenced test was not found"
// @Router /student-answers/batch [post]
func (c *StudentAnswerController) SubmitBatch(ctx *gin.Context) {
	var req dto.StudentAnswerBatchDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	answers, err := c.answerService.SubmitBatch(principalFrom(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, answers)
}

// List godoc
// @Summary List answers
// @Description Teachers see all answers, students only their own. material_id narrows to one material's tests.
// @Tags Student Answers
// @Produce json
// @Param material_id query int false "Filter by material"
// @Security BearerAuth
// @Success 200 {array} dto.StudentAnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /student-answers [get]
func (c *StudentAnswerController) List(ctx *gin.Context) {
	materialID, ok := parseOptionalIDQuery(ctx, "material_id")
	if !ok {
		return
	}
	answers, err := c.answerService.List(principalFrom(ctx), materialID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// Update godoc
// @Summary Update an answer (teacher only)
// @Description The stored correctness flag is recomputed against the current correct option.
// @Tags Student Answers
// @Accept json
// @Produce json
// @Param answer_id path int true "Answer ID"
// @Param answer body dto.StudentAnswerUpdateDTO true "Answer data"
// @Security BearerAuth
// @Success 200 {object} dto.StudentAnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student-answers/{answer_id} [put]
func (c *StudentAnswerController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "answer_id")
	if !ok {
		return
	}
	var req dto.StudentAnswerUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	answer, err := c.answerService.Update(principalFrom(ctx), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// Delete godoc
// @Summary Delete an answer (teacher only)
// @Tags Student Answers
// @Param answer_id path int true "Answer ID"
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student-answers/{answer_id} [delete]
func (c *StudentAnswerController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "answer_id")
	if !ok {
		return
	}
	if err := c.answerService.Delete(principalFrom(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
