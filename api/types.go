package api

import (
	"context"

	"tasks-api/domain"
)

// Storage abstracts the task collection for handlers.
type Storage interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, title string, completed bool) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, upd domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

// taskBodyMaxSize bounds task request bodies; a title and two flags never
// need more.
const taskBodyMaxSize = 64 * 1024 // 64 KiB

// createTaskRequest is the POST /api/tasks body. Unknown keys are dropped on
// decode and a caller-supplied id is ignored.
type createTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
