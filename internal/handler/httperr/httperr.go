package httperr

import (
	"log/slog"
	"net/http"
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type SuspendedDetail struct {
	Condition        string    `json:"condition"`
	SuspendedUntil   time.Time `json:"suspendedUntil"`
	RemainingSeconds int64     `json:"remainingSeconds"`
}

type ConflictDetail struct {
	Type     string  `json:"type"`
	MinStart *string `json:"minStart,omitempty"`
	SlotID   *string `json:"slotId,omitempty"`
}

// Respond maps an error class to a status. Only 4xx messages reach the
// client verbatim.
func Respond(c *gin.Context, err error) {
	var suspended *trust.SuspendedError
	if errs.As(err, &suspended) {
		AbortWithError(c, http.StatusLocked, err, err.Error(), SuspendedDetail{
			Condition:        "SUSPENDED",
			SuspendedUntil:   suspended.Until,
			RemainingSeconds: int64(suspended.Remaining / time.Second),
		})
		return
	}

	var conflict *availability.Conflict
	if errs.As(err, &conflict) {
		detail := ConflictDetail{Type: string(conflict.Type)}
		if conflict.MinStart != nil {
			s := conflict.MinStart.String()
			detail.MinStart = &s
		}
		if conflict.Slot != nil {
			s := conflict.Slot.ID.String()
			detail.SlotID = &s
		}
		AbortWithError(c, http.StatusConflict, err, conflict.Message, detail)
		return
	}

	switch {
	case errs.Is(err, request.ErrRevisionLimitReached):
		AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	case errs.IsValidation(err):
		AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.IsNotFound(err):
		AbortWithError(c, http.StatusNotFound, err, err.Error(), nil)
	case errs.IsForbidden(err):
		AbortWithError(c, http.StatusForbidden, err, err.Error(), nil)
	case errs.IsInvalidTransition(err), errs.IsConflict(err):
		AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	case errs.IsIntegrity(err):
		slog.ErrorContext(c.Request.Context(), "integrity violation",
			"path", c.FullPath(),
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 20))
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			"path", c.FullPath(),
			"error", err.Error())
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func BadRequest(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
