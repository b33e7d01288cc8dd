package api

import (
	"net/http"
	"time"

	"parking-core/internal/handler/httperr"
	"parking-core/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrInvalidID        = errs.NewKind("invalid id", errs.ErrInvalidInput)
	ErrInvalidTimestamp = errs.NewKind("timestamps must be RFC 3339", errs.ErrInvalidInput)
	errMissingCaller    = errs.New("authenticated user missing from context")
)

// bindJSON aborts with 400 and reports false when the body does not bind.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Abort(c, errs.Wrapf(ErrInvalidID, "%s %q", name, c.Param(name)))
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalID(name, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Wrapf(ErrInvalidID, "%s %q", name, raw)
	}
	return &id, nil
}

func parseOptionalTime(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.Wrapf(ErrInvalidTimestamp, "%s %q", name, raw)
	}
	t = t.UTC()
	return &t, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
