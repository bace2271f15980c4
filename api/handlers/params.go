package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qual-store/api/response"
	"qual-store/internal/apperr"
	"qual-store/internal/identity"
)

func badRequest(err error) error {
	return apperr.New(http.StatusBadRequest, "invalid_request", err)
}

// idParam parses a positive numeric path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.RespondAppError(c, badRequest(fmt.Errorf("invalid %s %q", name, raw)))
		return 0, false
	}
	return uint(id), true
}

func callerFrom(c *gin.Context) (identity.Caller, bool) {
	caller, ok := identity.FromContext(c.Request.Context())
	if !ok {
		response.RespondAppError(c, fmt.Errorf("%w: missing caller", apperr.ErrUnauthorized))
		return identity.Caller{}, false
	}
	return caller, true
}

// bindJSON and bindQuery answer 400 with code invalid_request on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondAppError(c, badRequest(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.RespondAppError(c, badRequest(err))
		return false
	}
	return true
}
