package middleware

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskvault/backend/api/handler"
	"github.com/taskvault/backend/api/transport"
	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/pkg/httpcontext"
)

// Authenticator resolves an opaque bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenID string) (*domain.User, error)
}

// BearerAuth short-circuits requests without a resolvable token before any
// business logic runs. On success the user and the presented token are
// attached to the request for handlers downstream.
func BearerAuth(auth Authenticator, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenID := extractToken(ctx)
			if tokenID == "" {
				reject(ctx)
				return
			}

			stdCtx, cancel := adapter.Attach(ctx)
			defer cancel()

			user, err := auth.Authenticate(stdCtx, tokenID)
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
					logger.Error("token resolution failed",
						zap.String("remote_addr", httpcontext.RemoteAddr(stdCtx)),
						zap.Error(err),
					)
				}
				reject(ctx)
				return
			}

			ctx.SetUserValue(apiHandler.UserKey, user)
			ctx.SetUserValue(apiHandler.TokenKey, tokenID)
			next(ctx)
		}
	}
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewMessage("Unauthenticated"))
	ctx.SetBody(body)
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
