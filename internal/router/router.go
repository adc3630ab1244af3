package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskvault/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Admin  *apiHandler.AdminHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/login", handlers.Auth.Login)
	r.POST("/api/logout", authMiddleware(handlers.Auth.Logout))

	// Task routes, scoped to the authenticated user
	r.GET("/api/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/tasks", authMiddleware(handlers.Task.Create))
	r.GET("/api/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.PUT("/api/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/tasks/{id}", authMiddleware(handlers.Task.Delete))

	// Admin surface, role-gated in the usecase layer
	r.GET("/api/admin/users", authMiddleware(handlers.Admin.ListUsers))
	r.POST("/api/admin/users", authMiddleware(handlers.Admin.CreateUser))
	r.GET("/api/admin/users/{id}", authMiddleware(handlers.Admin.GetUser))
	r.PUT("/api/admin/users/{id}", authMiddleware(handlers.Admin.UpdateUser))
	r.DELETE("/api/admin/users/{id}", authMiddleware(handlers.Admin.DeleteUser))
	r.GET("/api/admin/tasks", authMiddleware(handlers.Admin.ListTasks))
	r.PUT("/api/admin/tasks/{id}", authMiddleware(handlers.Admin.UpdateTask))
	r.DELETE("/api/admin/tasks/{id}", authMiddleware(handlers.Admin.DeleteTask))
	r.GET("/api/admin/activity", authMiddleware(handlers.Admin.Activity))

	return r
}
