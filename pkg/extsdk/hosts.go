package extsdk

import (
	"context"
	"time"
)

// Message is one entry in a task's conversation history.
type Message struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Todo is one entry in a task's todo list.
type Todo struct {
	ID      string
	Content string
	Done    bool
}

// TaskHost is the narrow surface the core requires from the host's task
// implementation. The core never touches task internals directly; extensions
// reach the task only through the TaskContext wrapper.
type TaskHost interface {
	ID() string

	AddContextFile(path string) error
	RemoveContextFile(path string) error
	ContextFiles() []string

	AddMessage(role, content string) error
	Messages() []Message

	SetTodos(todos []Todo) error
	Todos() []Todo

	RunPrompt(ctx context.Context, prompt string) error
	AskQuestion(ctx context.Context, question string, options []string) (string, error)
	RequestApproval(ctx context.Context, action string) (bool, error)
}

// ProjectHost is the narrow surface the core requires from the host's
// project implementation.
type ProjectHost interface {
	Dir() string

	CreateTask(ctx context.Context, prompt string) (TaskHost, error)
	Tasks() []TaskHost
	DeleteTask(id string) error

	Setting(key string) (any, bool)
	Commands() []string

	ShowNotification(message string) error
	ShowConfirm(ctx context.Context, message string) (bool, error)
	ShowInput(ctx context.Context, prompt string) (string, error)
}

// TaskContext is the read/limited-write wrapper over the currently bound
// task handed to extension code. It exposes context-file, message and todo
// management plus prompt execution and question/approval flows, never the
// raw task.
type TaskContext struct {
	host TaskHost
}

// NewTaskContext wraps a task host. A nil host yields a nil context.
func NewTaskContext(host TaskHost) *TaskContext {
	if host == nil {
		return nil
	}
	return &TaskContext{host: host}
}

func (t *TaskContext) ID() string { return t.host.ID() }

func (t *TaskContext) AddContextFile(path string) error    { return t.host.AddContextFile(path) }
func (t *TaskContext) RemoveContextFile(path string) error { return t.host.RemoveContextFile(path) }
func (t *TaskContext) ContextFiles() []string              { return t.host.ContextFiles() }

func (t *TaskContext) AddMessage(role, content string) error { return t.host.AddMessage(role, content) }
func (t *TaskContext) Messages() []Message                   { return t.host.Messages() }

func (t *TaskContext) SetTodos(todos []Todo) error { return t.host.SetTodos(todos) }
func (t *TaskContext) Todos() []Todo               { return t.host.Todos() }

func (t *TaskContext) RunPrompt(ctx context.Context, prompt string) error {
	return t.host.RunPrompt(ctx, prompt)
}

func (t *TaskContext) AskQuestion(ctx context.Context, question string, options []string) (string, error) {
	return t.host.AskQuestion(ctx, question, options)
}

func (t *TaskContext) RequestApproval(ctx context.Context, action string) (bool, error) {
	return t.host.RequestApproval(ctx, action)
}

// ProjectContext is the read/limited-write wrapper over the bound project:
// task CRUD, settings read and command listing.
type ProjectContext struct {
	host ProjectHost
}

// NewProjectContext wraps a project host. A nil host yields a nil context.
func NewProjectContext(host ProjectHost) *ProjectContext {
	if host == nil {
		return nil
	}
	return &ProjectContext{host: host}
}

func (p *ProjectContext) Dir() string { return p.host.Dir() }

func (p *ProjectContext) CreateTask(ctx context.Context, prompt string) (*TaskContext, error) {
	task, err := p.host.CreateTask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return NewTaskContext(task), nil
}

func (p *ProjectContext) Tasks() []*TaskContext {
	hosts := p.host.Tasks()
	out := make([]*TaskContext, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, NewTaskContext(h))
	}
	return out
}

func (p *ProjectContext) DeleteTask(id string) error { return p.host.DeleteTask(id) }

func (p *ProjectContext) Setting(key string) (any, bool) { return p.host.Setting(key) }
func (p *ProjectContext) Commands() []string             { return p.host.Commands() }
