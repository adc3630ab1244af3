// Package httpcontext bridges fasthttp request handling and the
// context.Context plumbing the rest of the application expects.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/taskvault/backend/pkg/logger"
)

type remoteAddrKey struct{}
type userAgentKey struct{}

// RequestIDHeader is read from the request when present and always set
// on the response.
const RequestIDHeader = "X-Request-ID"

// Adapter derives a deadline-bound stdlib context from a fasthttp
// request, carrying the request id and client metadata.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach builds the per-request context. The caller owns the returned
// cancel function.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set(RequestIDHeader, reqID)

	if addr := ctx.RemoteAddr(); addr != nil {
		stdCtx = context.WithValue(stdCtx, remoteAddrKey{}, addr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, userAgentKey{}, ua)
	}

	return stdCtx, cancel
}

// RemoteAddr returns the client address recorded by Attach.
func RemoteAddr(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	addr, _ := ctx.Value(remoteAddrKey{}).(string)
	return addr
}

// UserAgent returns the client user agent recorded by Attach.
func UserAgent(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if ctx != nil {
		if header := strings.TrimSpace(string(ctx.Request.Header.Peek(RequestIDHeader))); header != "" {
			return header
		}
	}
	return uuid.NewString()
}
