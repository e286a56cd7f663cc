package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/service"
)

type TestController struct {
	testService service.TestService
}

func NewTestController(testService service.TestService) *TestController {
	return &TestController{testService: testService}
}

// List godoc
// @Summary List visible tests
// @Description Teachers see tests on their own materials; students see tests on subscribed courses. material_id narrows the visible set.
// @Tags Tests
// @Produce json
// @Param material_id query int false "Filter by material"
// @Security BearerAuth
// @Success 200 {array} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *TestController) List(ctx *gin.Context) {
	materialID, ok := parseOptionalIDQuery(ctx, "material_id")
	if !ok {
		return
	}
	tests, err := c.testService.List(principalFrom(ctx), materialID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// Get godoc
// @Summary Retrieve a test with its answer options
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Security BearerAuth
// @Success 200 {object} dto.TestResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	test, err := c.testService.Get(principalFrom(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// Create godoc
// @Summary Create a test with nested answer options
// @Tags Tests
// @Accept json
// @Produce json
// @Param test body dto.TestDTO true "Test data"
// @Security BearerAuth
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Router /tests [post]
func (c *TestController) Create(ctx *gin.Context) {
	var req dto.TestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	test, err := c.testService.Create(principalFrom(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// Update godoc
// @Summary Update a test
// @Tags Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param test body dto.TestDTO true "Test data"
// @Security BearerAuth
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [put]
func (c *TestController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.TestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	test, err := c.testService.Update(principalFrom(ctx), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// Delete godoc
// @Summary Delete a test
// @Tags Tests
// @Param test_id path int true "Test ID"
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [delete]
func (c *TestController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	if err := c.testService.Delete(principalFrom(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
