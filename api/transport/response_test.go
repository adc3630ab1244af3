package transport_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/api/transport"
	"github.com/taskvault/backend/domain"
)

func TestTaskResponseDueDate(t *testing.T) {
	due := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	resp := transport.NewTaskResponse(domain.Task{
		ID:       "t1",
		Title:    "Write report",
		Priority: domain.PriorityHigh,
		Status:   domain.StatusInProgress,
		DueDate:  &due,
	})

	require.NotNil(t, resp.DueDate)
	assert.Equal(t, "2026-09-01 10:30:00", *resp.DueDate)
	assert.Equal(t, "high", resp.Priority)
	assert.Equal(t, "in progress", resp.Status)
}

func TestTaskResponseNullDueDate(t *testing.T) {
	resp := transport.NewTaskResponse(domain.Task{ID: "t1", Title: "x"})

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"dueDate":null`)
}

func TestUserResponseOmitsPassword(t *testing.T) {
	resp := transport.NewUserResponse(domain.User{
		ID:           "u1",
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         domain.RoleAdmin,
	})

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.Contains(t, string(out), `"role":"admin"`)
}

func TestEnvelopeShapes(t *testing.T) {
	out, err := json.Marshal(transport.NewToken("abc"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(out))

	out, err = json.Marshal(transport.NewMessage("Logged out"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Logged out"}`, string(out))

	out, err = json.Marshal(transport.NewValidationErrors(map[string]string{"title": "cannot be blank"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"The given data was invalid.","errors":{"title":"cannot be blank"}}`, string(out))
}

func TestNewTaskListResponseEmpty(t *testing.T) {
	out, err := json.Marshal(transport.NewData(transport.NewTaskListResponse(nil)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(out))
}
