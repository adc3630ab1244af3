package domain

// TaskStatus is the closed set of task lifecycle states. The conventional
// progression is pending -> in progress -> completed, but transitions are
// not restricted: any authorized update may set any valid member.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatusValues lists every member in declaration order.
func TaskStatusValues() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return ""
}

func (s TaskStatus) String() string {
	return string(s)
}
