package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskvault/backend/api/transport"
	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/pkg/httpcontext"
)

// Request-scoped values set by the auth middleware.
const (
	UserKey  = "current_user"
	TokenKey = "auth_token"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// currentUser returns the identity resolved by the auth middleware. The
// middleware already rejected unauthenticated requests, so a miss here is
// a wiring bug rather than a client error; it still maps to 401.
func (h baseHandler) currentUser(ctx *fasthttp.RequestCtx) (*domain.User, bool) {
	user, ok := ctx.UserValue(UserKey).(*domain.User)
	if !ok || user == nil {
		h.respondError(ctx, domain.ErrUnauthenticated)
		return nil, false
	}
	return user, true
}

func (h baseHandler) pathParam(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ctx.UserValue(name).(string)
	return value
}

// decodeJSON unmarshals the request body. An unreadable body is treated as
// an empty payload so field validation reports every required field.
func (h baseHandler) decodeJSON(ctx *fasthttp.RequestCtx, dest interface{}) {
	body := ctx.PostBody()
	if len(body) == 0 {
		return
	}
	if err := json.Unmarshal(body, dest); err != nil {
		h.logger.Debug("undecodable request body", zap.Error(err))
	}
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondData(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewData(data))
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, message string) {
	h.respondJSON(ctx, status, transport.NewMessage(message))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	if vErr, ok := domain.AsValidationError(err); ok {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewValidationErrors(vErr.Fields))
		return
	}

	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewMessage(message))
}

func mapError(err error) (int, string) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		return http.StatusInternalServerError, "Server Error"
	}
	switch dErr.Code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized, dErr.Message
	case domain.ErrCodeForbidden:
		return http.StatusForbidden, dErr.Message
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, dErr.Message
	case domain.ErrCodeConflict:
		return http.StatusConflict, dErr.Message
	case domain.ErrCodeValidation:
		return http.StatusUnprocessableEntity, dErr.Message
	default:
		return http.StatusInternalServerError, "Server Error"
	}
}
