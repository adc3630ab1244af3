package domain

import "time"

// Task represents a user-owned activity item.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// CanAccess is the single ownership gate: every record-scoped handler goes
// through it rather than comparing ids inline.
func CanAccess(user *User, task *Task) bool {
	if user == nil || task == nil {
		return false
	}
	return task.UserID == user.ID
}
