package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"hogar/internal/core"
	"hogar/internal/ledger"
	"hogar/internal/log"
	"hogar/internal/repo"
)

// TaskService manages chores and keeps the points ledger in step with
// completion toggles.
type TaskService struct {
	tasks  *repo.Tasks
	ledger *ledger.Ledger
	points int

	// Toggles pair a task write with a ledger write; serializing them
	// keeps a double-toggle from double-awarding.
	mu sync.Mutex
}

func NewTaskService(tasks *repo.Tasks, l *ledger.Ledger, points int) *TaskService {
	if points <= 0 {
		points = core.TaskPoints
	}
	return &TaskService{tasks: tasks, ledger: l, points: points}
}

func (s *TaskService) List(ctx context.Context) ([]core.Task, error) {
	return s.tasks.List(ctx)
}

func (s *TaskService) Add(ctx context.Context, text string, owner core.Owner) (core.Task, error) {
	t := core.Task{Text: strings.TrimSpace(text), Owner: owner}
	if err := t.Validate(); err != nil {
		return core.Task{}, err
	}
	id, err := s.tasks.Add(ctx, t)
	if err != nil {
		return core.Task{}, err
	}
	t.ID = id
	return t, nil
}

func (s *TaskService) EditText(ctx context.Context, id, text string) (core.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.Task{}, &core.ValidationError{Field: "text", Reason: "must not be blank"}
	}
	return s.tasks.Update(ctx, id, func(t *core.Task) {
		t.Text = text
	})
}

// Toggle flips the completion state. When the task belongs to a concrete
// user, completing awards the configured points and un-completing takes
// them back; the clawback is clamped at zero like every other debit-free
// ledger write, so points already spent on rewards are not owed.
func (s *TaskService) Toggle(ctx context.Context, id string) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tasks.Update(ctx, id, func(t *core.Task) {
		t.Completed = !t.Completed
	})
	if err != nil {
		return core.Task{}, err
	}

	if name, ok := t.Owner.UserName(); ok {
		delta := s.points
		if !t.Completed {
			delta = -s.points
		}
		balance, err := s.ledger.Award(ctx, name, delta)
		if err != nil {
			return core.Task{}, fmt.Errorf("adjust points: %w", err)
		}
		slog.InfoContext(ctx, "Task toggled",
			"id", t.ID,
			"completed", t.Completed,
			log.FieldUser, name,
			"delta", delta,
			"balance", balance)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Remove(ctx, id)
}

// Reassign moves the task to owner. Reassigning to the current owner or
// a missing id is a no-op, which makes a replayed reassignment safe.
func (s *TaskService) Reassign(ctx context.Context, id string, owner core.Owner) (core.Task, error) {
	t, changed, err := s.tasks.Reassign(ctx, id, owner)
	if err != nil {
		return core.Task{}, err
	}
	if changed {
		slog.InfoContext(ctx, "Task reassigned", "id", id, log.FieldOwner, owner.String())
	}
	return t, nil
}
