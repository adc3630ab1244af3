package transport

import (
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/taskvault/backend/domain"
)

// dueDateLayouts are the accepted input formats for due_date, most
// specific first.
var dueDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseDueDate parses a due_date string against the accepted layouts.
func ParseDueDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

var dueDateRule = validation.By(func(value interface{}) error {
	raw, _ := validation.Indirect(value)
	s, _ := raw.(string)
	if s == "" {
		return nil
	}
	if _, err := ParseDueDate(s); err != nil {
		return validation.NewError("validation_due_date", "must be a valid date")
	}
	return nil
})

var passwordRule = validation.By(func(value interface{}) error {
	raw, _ := validation.Indirect(value)
	s, _ := raw.(string)
	if s == "" {
		return nil
	}
	if len(s) < 8 {
		return validation.NewError("validation_password_length", "must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return validation.NewError("validation_password_strength",
			"must include at least one uppercase letter, one lowercase letter, and one number")
	}
	return nil
})

// asDomainError flattens ozzo's validation.Errors into the domain-level
// ValidationError the error mapper understands.
func asDomainError(err error) error {
	if err == nil {
		return nil
	}
	ozzoErrs, ok := err.(validation.Errors)
	if !ok {
		return domain.ErrInvalidPayload
	}
	fields := make(map[string]string, len(ozzoErrs))
	for field, fieldErr := range ozzoErrs {
		fields[field] = fieldErr.Error()
	}
	return domain.NewValidationError(fields)
}

func priorityValues() []interface{} {
	values := domain.PriorityValues()
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func statusValues() []interface{} {
	values := domain.TaskStatusValues()
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func roleValues() []interface{} {
	values := domain.RoleValues()
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return asDomainError(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	))
}

// TaskCreateRequest carries the payload for creating a task.
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
}

func (r TaskCreateRequest) Validate() error {
	return asDomainError(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Priority, validation.Required,
			validation.In(priorityValues()...).Error("must be a valid priority")),
		validation.Field(&r.Status, validation.Required,
			validation.In(statusValues()...).Error("must be a valid status")),
		validation.Field(&r.DueDate, dueDateRule),
	))
}

// Due returns the parsed due date, or nil when the field was empty.
// Validate must have passed first.
func (r TaskCreateRequest) Due() *time.Time {
	if r.DueDate == "" {
		return nil
	}
	t, err := ParseDueDate(r.DueDate)
	if err != nil {
		return nil
	}
	return &t
}

// TaskUpdateRequest carries a partial task update. Absent fields keep
// their stored values; present fields must satisfy the create rules, so a
// blank title is a violation rather than a no-op.
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

func (r TaskUpdateRequest) Validate() error {
	return asDomainError(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Priority, validation.NilOrNotEmpty,
			validation.In(priorityValues()...).Error("must be a valid priority")),
		validation.Field(&r.Status, validation.NilOrNotEmpty,
			validation.In(statusValues()...).Error("must be a valid status")),
		validation.Field(&r.DueDate, dueDateRule),
	))
}

// Apply copies the provided fields onto the task. Validate must have
// passed first.
func (r TaskUpdateRequest) Apply(task *domain.Task) {
	if r.Title != nil {
		task.Title = *r.Title
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.Priority != nil {
		task.Priority = domain.Priority(*r.Priority)
	}
	if r.Status != nil {
		task.Status = domain.TaskStatus(*r.Status)
	}
	if r.DueDate != nil {
		if *r.DueDate == "" {
			task.DueDate = nil
		} else if t, err := ParseDueDate(*r.DueDate); err == nil {
			task.DueDate = &t
		}
	}
}

// AdminUserCreateRequest carries the admin payload for creating a user.
type AdminUserCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r AdminUserCreateRequest) Validate() error {
	return asDomainError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required, passwordRule),
		validation.Field(&r.Role, validation.Required,
			validation.In(roleValues()...).Error("must be a valid role")),
	))
}

// AdminUserUpdateRequest carries a partial admin update of a user.
// Password is only rehashed when provided.
type AdminUserUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (r AdminUserUpdateRequest) Validate() error {
	return asDomainError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.NilOrNotEmpty, passwordRule),
		validation.Field(&r.Role, validation.NilOrNotEmpty,
			validation.In(roleValues()...).Error("must be a valid role")),
	))
}
