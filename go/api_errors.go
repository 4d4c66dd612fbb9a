package restaurantserver

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/http/mapper"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

func responderOrDefault(r *apierrors.Responder) *apierrors.Responder {
	if r == nil {
		return apierrors.DefaultResponder
	}
	return r
}

// respondMapperError turns transport validation errors into envelope failures.
func respondMapperError(r *apierrors.Responder, c *gin.Context, err error) {
	switch {
	case errors.Is(err, mapper.ErrMissingFields):
		r.Respond(c, apierrors.ErrMissingEntryData)
	case errors.Is(err, mapper.ErrInvalidItems):
		r.Respond(c, apierrors.ErrImproperEntryData.WithMessageFrom(err))
	default:
		r.RespondError(c, err)
	}
}

// bindJSON decodes the body and reports malformed JSON as a bad request.
func bindJSON(r *apierrors.Responder, c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		r.Respond(c, apierrors.ErrBadRequest.WithMessage("Malformed request body").Wrap(err))
		return false
	}
	return true
}

func parseIDParam(r *apierrors.Responder, c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		r.Respond(c, apierrors.ErrBadRequest.WithMessage(fmt.Sprintf("Invalid %s %q", name, value)))
		return 0, false
	}
	return id, true
}

func notFound(r *apierrors.Responder, c *gin.Context, entity string, id int64) {
	r.Respond(c, apierrors.ErrEntityNotFound.WithMessagef("%s %d not found", entity, id))
}
