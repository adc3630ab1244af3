package transport

import (
	"encoding/json"
	"time"

	"github.com/taskvault/backend/domain"
)

// DueDateFormat is the wire representation of task due dates.
const DueDateFormat = "2006-01-02 15:04:05"

// Envelope is the standard API response wrapper. Success payloads live
// under "data"; token and message responses use their dedicated fields;
// validation failures carry a field -> message map under "errors".
type Envelope struct {
	Data    interface{}       `json:"data,omitempty"`
	Token   string            `json:"token,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// NewData wraps a payload in the data envelope.
func NewData(data interface{}) Envelope {
	return Envelope{Data: data}
}

// NewToken returns the login response envelope.
func NewToken(token string) Envelope {
	return Envelope{Token: token}
}

// NewMessage returns a status-message envelope.
func NewMessage(message string) Envelope {
	return Envelope{Message: message}
}

// NewValidationErrors returns the 422 envelope naming every offending field.
func NewValidationErrors(fields map[string]string) Envelope {
	return Envelope{
		Message: "The given data was invalid.",
		Errors:  fields,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// TaskResponse is the wire projection of a task. Priority and status are
// serialized as enum values; dueDate is null when unset.
type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
}

func NewTaskResponse(task domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority.String(),
		Status:      task.Status.String(),
	}
	if task.DueDate != nil {
		due := task.DueDate.Format(DueDateFormat)
		resp.DueDate = &due
	}
	return resp
}

func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return out
}

// UserResponse is the wire projection of a user. The password hash never
// leaves the domain layer.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
