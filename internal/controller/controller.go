// Package controller holds the gin HTTP handlers. Controllers only bind,
// authorize via the services, and translate typed errors into status
// codes; all policy lives below them.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/learnora/backend/internal/apperr"
	"github.com/learnora/backend/internal/authz"
	"github.com/learnora/backend/internal/dto"
)

const principalKey = "principal"

// principalFrom returns the principal attached by the middleware, or an
// anonymous one when the middleware did not run.
func principalFrom(ctx *gin.Context) authz.Principal {
	if v, ok := ctx.Get(principalKey); ok {
		if p, ok := v.(authz.Principal); ok {
			return p
		}
	}
	return authz.Anonymous()
}

// respondError maps a service error onto the boundary contract: typed
// kinds keep their classification, anything else becomes an opaque 500.
func respondError(ctx *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	resp := dto.ErrorResponse{Message: "An error occurred"}
	if e, ok := apperr.As(err); ok {
		resp.Message = e.Message
		for _, f := range e.Fields {
			resp.Fields = append(resp.Fields, dto.FieldInfo{Field: f.Field, Reason: f.Reason})
		}
	}
	ctx.JSON(status, resp)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// parseOptionalIDQuery reads an optional numeric query parameter such as
// material_id.
func parseOptionalIDQuery(ctx *gin.Context, name string) (*uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return nil, false
	}
	id := uint(val)
	return &id, true
}

func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid request body",
		Details: []string{err.Error()},
	})
}
