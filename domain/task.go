package domain

import "strings"

// Task represents a single item in the task collection.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskUpdate carries partial updates for a task. Nil fields are left
// unchanged; the task ID can never be updated.
type TaskUpdate struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// ValidationError reports a task field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// NewTask validates the provided fields and returns a Task. The ID must be
// positive and the title must contain at least one non-whitespace character.
// The title is stored as given; trimming is only applied for the blank check.
func NewTask(id int64, title string, completed bool) (Task, error) {
	if id <= 0 {
		return Task{}, ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	if strings.TrimSpace(title) == "" {
		return Task{}, ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return Task{ID: id, Title: title, Completed: completed}, nil
}

// Apply merges the non-nil fields of upd into the task. A supplied title is
// held to the same non-blank rule as at creation.
func (t *Task) Apply(upd TaskUpdate) error {
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return ValidationError{Field: "title", Reason: "must not be empty"}
		}
		t.Title = *upd.Title
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	return nil
}
