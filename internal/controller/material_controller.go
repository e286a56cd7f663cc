package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/service"
)

type MaterialController struct {
	materialService service.MaterialService
}

func NewMaterialController(materialService service.MaterialService) *MaterialController {
	return &MaterialController{materialService: materialService}
}

// List godoc
// @Summary List materials visible to the caller
// @Description Subscription-gated: materials of subscribed courses plus own materials.
// @Tags Materials
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MaterialResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Authentication required"
// @Router /materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	materials, err := c.materialService.List(principalFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, materials)
}

// Create godoc
// @Summary Create a material
// @Description Teacher-only. Content must not link outside youtube.com.
// @Tags Materials
// @Accept json
// @Produce json
// @Param material body dto.MaterialDTO true "Material data"
// @Security BearerAuth
// @Success 201 {object} dto.MaterialResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /materials [post]
func (c *MaterialController) Create(ctx *gin.Context) {
	var req dto.MaterialDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	material, err := c.materialService.Create(principalFrom(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, material)
}

// Get godoc
// @Summary Retrieve a material
// @Tags Materials
// @Produce json
// @Param material_id path int true "Material ID"
// @Security BearerAuth
// @Success 200 {object} dto.MaterialResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /materials/{material_id} [get]
func (c *MaterialController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "material_id")
	if !ok {
		return
	}
	material, err := c.materialService.Get(principalFrom(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, material)
}

// Update godoc
// @Summary Update a material
// @Description Notifies every active subscriber of the material's course asynchronously.
// @Tags Materials
// @Accept json
// @Produce json
// @Param material_id path int true "Material ID"
// @Param material body dto.MaterialDTO true "Material data"
// @Security BearerAuth
// @Success 200 {object} dto.MaterialResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /materials/{material_id} [put]
func (c *MaterialController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "material_id")
	if !ok {
		return
	}
	var req dto.MaterialDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	material, err := c.materialService.Update(principalFrom(ctx), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, material)
}

// Delete godoc
// @Summary Delete a material
// @Tags Materials
// @Param material_id path int true "Material ID"
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /materials/{material_id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "material_id")
	if !ok {
		return
	}
	if err := c.materialService.Delete(principalFrom(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
