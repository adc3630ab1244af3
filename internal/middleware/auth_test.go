package middleware_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskvault/backend/api/handler"
	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/internal/middleware"
	"github.com/taskvault/backend/pkg/httpcontext"
	"github.com/taskvault/backend/repository/memory"
	authUC "github.com/taskvault/backend/usecase/auth"
)

func newProtected(t *testing.T) (func(fasthttp.RequestHandler) fasthttp.RequestHandler, string, *domain.User) {
	t.Helper()

	users := memory.NewUserRepository()
	tokens := memory.NewTokenRepository()

	user, err := users.Create(context.Background(), &domain.User{
		Name: "Jane", Email: "jane@example.com", Role: domain.RoleUser,
	})
	require.NoError(t, err)

	token := &domain.Token{
		ID:        "valid-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tokens.Save(context.Background(), token))

	uc := authUC.New(users, tokens, nil, nil, time.Hour)
	adapter := httpcontext.NewAdapter(time.Second)

	return middleware.BearerAuth(uc, adapter, nil), token.ID, user
}

func doRequest(mw func(fasthttp.RequestHandler) fasthttp.RequestHandler, authorization string) (*fasthttp.RequestCtx, bool) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(http.MethodGet)
	ctx.Request.SetRequestURI("/api/tasks")
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}

	var reached bool
	mw(func(ctx *fasthttp.RequestCtx) {
		reached = true
		ctx.SetStatusCode(http.StatusOK)
	})(ctx)
	return ctx, reached
}

func TestBearerAuthPassesValidToken(t *testing.T) {
	mw, tokenID, user := newProtected(t)

	ctx, reached := doRequest(mw, "Bearer "+tokenID)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	resolved, ok := ctx.UserValue(apiHandler.UserKey).(*domain.User)
	require.True(t, ok)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, tokenID, ctx.UserValue(apiHandler.TokenKey))
}

func TestBearerAuthRejectsMissingHeader(t *testing.T) {
	mw, _, _ := newProtected(t)

	ctx, reached := doRequest(mw, "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"Unauthenticated"}`, string(ctx.Response.Body()))
}

func TestBearerAuthRejectsUnknownToken(t *testing.T) {
	mw, _, _ := newProtected(t)

	ctx, reached := doRequest(mw, "Bearer does-not-exist")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestBearerAuthAcceptsBareToken(t *testing.T) {
	mw, tokenID, _ := newProtected(t)

	_, reached := doRequest(mw, tokenID)

	assert.True(t, reached)
}
