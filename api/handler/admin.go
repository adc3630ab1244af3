package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskvault/backend/api/transport"
	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/pkg/httpcontext"
	"github.com/taskvault/backend/pkg/password"
	"github.com/taskvault/backend/repository"
	adminUC "github.com/taskvault/backend/usecase/admin"
)

type AdminHandler struct {
	baseHandler
	uc *adminUC.UseCase
}

func NewAdminHandler(uc *adminUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List users
// @Tags admin
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.UserFilter{
		Role:   string(ctx.QueryArgs().Peek("role")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.ListUsers(stdCtx, actor, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, transport.NewUserListResponse(users))
}

// @Summary Get a single user
// @Tags admin
// @Router /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id := h.pathParam(ctx, "id")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetUser(stdCtx, actor, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, transport.NewUserResponse(*user))
}

// @Summary Create a user
// @Tags admin
// @Router /api/admin/users [post]
func (h *AdminHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var req transport.AdminUserCreateRequest
	h.decodeJSON(ctx, &req)

	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.Role(req.Role),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateUser(stdCtx, actor, user)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusCreated, transport.NewUserResponse(*created))
}

// @Summary Update a user
// @Tags admin
// @Router /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id := h.pathParam(ctx, "id")

	var req transport.AdminUserUpdateRequest
	h.decodeJSON(ctx, &req)

	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	var hash string
	if req.Password != nil {
		var err error
		if hash, err = password.Hash(*req.Password); err != nil {
			h.respondError(ctx, err)
			return
		}
	}

	apply := func(user *domain.User) {
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.Password != nil {
			user.PasswordHash = hash
		}
		if req.Role != nil {
			user.Role = domain.Role(*req.Role)
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateUser(stdCtx, actor, id, apply)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, transport.NewUserResponse(*updated))
}

// @Summary Delete a user and their tasks
// @Tags admin
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id := h.pathParam(ctx, "id")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteUser(stdCtx, actor, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "User deleted")
}

// @Summary List tasks across all users
// @Tags admin
// @Router /api/admin/tasks [get]
func (h *AdminHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.TaskFilter{
		UserID: string(ctx.QueryArgs().Peek("user_id")),
		Status: string(ctx.QueryArgs().Peek("status")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, actor, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, transport.NewTaskListResponse(tasks))
}

// @Summary Update any user's task
// @Tags admin
// @Router /api/admin/tasks/{id} [put]
func (h *AdminHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id := h.pathParam(ctx, "id")

	var req transport.TaskUpdateRequest
	h.decodeJSON(ctx, &req)

	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, actor, id, req.Apply)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, transport.NewTaskResponse(*updated))
}

// @Summary Delete any user's task
// @Tags admin
// @Router /api/admin/tasks/{id} [delete]
func (h *AdminHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id := h.pathParam(ctx, "id")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, actor, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Task deleted")
}

// @Summary Recent audit activity
// @Tags admin
// @Router /api/admin/activity [get]
func (h *AdminHandler) Activity(ctx *fasthttp.RequestCtx) {
	actor, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 50)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.Activity(stdCtx, actor, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, entries)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
