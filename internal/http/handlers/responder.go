package handlers

import (
	"log/slog"
	nethttp "net/http"

	"github.com/unrolled/render"

	"github.com/preston-bernstein/fantasy-data-service/internal/http/middleware"
	"github.com/preston-bernstein/fantasy-data-service/internal/http/requestutil"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
	"github.com/preston-bernstein/fantasy-data-service/internal/timeutil"
)

// responder renders envelopes. Zero value is not usable; see newResponder.
type responder struct {
	render *render.Render
	logger *slog.Logger
	now    nowFunc
}

func newResponder(logger *slog.Logger, now nowFunc) *responder {
	return &responder{
		render: render.New(render.Options{UnEscapeHTML: true, DisableHTTPErrorRendering: true}),
		logger: logger,
		now:    now,
	}
}

func (rs *responder) writeData(w nethttp.ResponseWriter, r *nethttp.Request, status int, data any) {
	rs.writeJSON(w, r, status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: timeutil.FormatTimestamp(rs.now()),
	})
}

func (rs *responder) writeError(w nethttp.ResponseWriter, r *nethttp.Request, body ErrorBody) {
	rs.writeJSON(w, r, StatusForCode(body.Code), Envelope{
		Success:   false,
		Message:   body.Message,
		Error:     &body,
		Timestamp: timeutil.FormatTimestamp(rs.now()),
		RequestID: requestIDFor(r),
	})
}

// writeJSON falls back to a generic 500 envelope when the payload cannot be encoded; the
// encoder's error text never reaches the client.
func (rs *responder) writeJSON(w nethttp.ResponseWriter, r *nethttp.Request, status int, payload Envelope) {
	err := rs.render.JSON(w, status, payload)
	if err == nil {
		return
	}
	logging.Error(loggerFromContext(r, rs.logger), "failed to encode response", err)

	fallback := ErrorBody{Code: providers.CodeInternal, Message: messageInternal}
	err = rs.render.JSON(w, nethttp.StatusInternalServerError, Envelope{
		Success:   false,
		Message:   fallback.Message,
		Error:     &fallback,
		Timestamp: timeutil.FormatTimestamp(rs.now()),
		RequestID: requestIDFor(r),
	})
	if err != nil {
		logging.Error(loggerFromContext(r, rs.logger), "failed to encode fallback response", err)
	}
}

func requestIDFor(r *nethttp.Request) string {
	if r == nil {
		return ""
	}
	if reqID := middleware.RequestIDFromContext(r.Context()); reqID != "" {
		return reqID
	}
	return r.Header.Get(requestutil.HeaderRequestID)
}

func loggerFromContext(r *nethttp.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
