package errors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON body returned by every restaurant endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    any             `json:"data"`
	Results map[string]bool `json:"results,omitempty"`
}

// Responder writes envelopes and converts errors into them.
type Responder struct {
	logger *slog.Logger
	silent map[int]struct{}
}

// NewResponder creates a responder. Failures whose code is listed in silentCodes are not logged.
func NewResponder(logger *slog.Logger, silentCodes ...int) *Responder {
	silent := make(map[int]struct{}, len(silentCodes))
	for _, code := range silentCodes {
		silent[code] = struct{}{}
	}
	return &Responder{logger: logger, silent: silent}
}

// DefaultResponder logs through slog.Default and silences not-found and missing data.
var DefaultResponder = NewResponder(nil, CodeEntryNotFound, CodeMissingEntryData)

// OK sends a successful envelope.
func (r *Responder) OK(c *gin.Context, status int, data any) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Envelope{Success: true, Code: CodeOK, Data: data})
}

// NoContent acknowledges a delete.
func (r *Responder) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Partial reports a bulk update where some fields failed to apply.
func (r *Responder) Partial(c *gin.Context, data any, results map[string]bool) {
	c.JSON(http.StatusMultiStatus, Envelope{
		Success: false,
		Message: "Some items did not successfully update.",
		Code:    CodePartialSuccess,
		Data:    data,
		Results: results,
	})
}

// Respond sends a Failure envelope with its status.
func (r *Responder) Respond(c *gin.Context, f Failure) {
	data := any(f.Data)
	if f.Data == nil {
		data = gin.H{}
	}
	c.JSON(f.Status, Envelope{
		Success: false,
		Message: f.Message,
		Code:    f.Code,
		Data:    data,
	})
}

// RespondError converts err to an envelope. Errors outside the taxonomy are masked.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	f, ok := AsFailure(err)
	if !ok {
		r.log(c, slog.LevelError, "unhandled error", err)
		r.Respond(c, ErrInternal)
		return
	}
	if _, quiet := r.silent[f.Code]; !quiet {
		level := slog.LevelWarn
		if f.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		r.log(c, level, "request failed", err, slog.Int("code", f.Code))
	}
	if f.Kind == KindInternal {
		f.Message = ErrInternal.Message
		f.Data = nil
	}
	r.Respond(c, f)
}

func (r *Responder) log(c *gin.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs = append(attrs,
		slog.String("error", err.Error()),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)
	logger.LogAttrs(c.Request.Context(), level, msg, attrs...)
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, f Failure) {
	DefaultResponder.Respond(c, f)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}
