package storage

import (
	"context"
	"sync"

	"tasks-api/domain"
)

// Memory owns the authoritative task collection for the process lifetime.
// Tasks are kept in insertion order and IDs come from a counter that never
// decreases, so a deleted ID is never handed out again. A single mutex guards
// every operation. Separate processes never share a Memory instance: each one
// has its own collection and counter.
type Memory struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int64
}

// NewMemory returns an empty store with the ID counter at 1.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// ListTasks returns a copy of all tasks in insertion order.
func (m *Memory) ListTasks(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

// GetTask returns the task with the given ID, or nil when absent.
func (m *Memory) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return nil, nil
	}
	t := m.tasks[i]
	return &t, nil
}

// CreateTask validates the fields, assigns the next sequential ID and appends
// the task to the collection.
func (m *Memory) CreateTask(ctx context.Context, title string, completed bool) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, err := domain.NewTask(m.nextID, title, completed)
	if err != nil {
		return domain.Task{}, err
	}
	m.tasks = append(m.tasks, task)
	m.nextID++
	return task, nil
}

// UpdateTask applies the non-nil fields of upd to the task with the given ID
// and returns the updated task, or nil when absent. The stored ID is never
// changed.
func (m *Memory) UpdateTask(ctx context.Context, id int64, upd domain.TaskUpdate) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return nil, nil
	}
	if err := m.tasks[i].Apply(upd); err != nil {
		return nil, err
	}
	t := m.tasks[i]
	return &t, nil
}

// DeleteTask removes the task with the given ID and reports whether a task
// was removed. Survivors keep their IDs and relative order.
func (m *Memory) DeleteTask(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return true, nil
}

// Reset clears the collection and rewinds the ID counter to 1. It exists for
// test isolation and is not part of the serving contract.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = nil
	m.nextID = 1
}

func (m *Memory) index(id int64) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
