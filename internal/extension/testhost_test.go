package extension

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"codeforge/pkg/extsdk"
)

// fakeTask is an in-memory TaskHost for tests.
type fakeTask struct {
	id           string
	contextFiles []string
	messages     []extsdk.Message
	todos        []extsdk.Todo
	prompts      []string
	answer       string
	approve      bool
}

func newFakeTask() *fakeTask {
	return &fakeTask{id: uuid.NewString(), approve: true}
}

func (t *fakeTask) ID() string { return t.id }

func (t *fakeTask) AddContextFile(path string) error {
	t.contextFiles = append(t.contextFiles, path)
	return nil
}

func (t *fakeTask) RemoveContextFile(path string) error {
	for i, p := range t.contextFiles {
		if p == path {
			t.contextFiles = append(t.contextFiles[:i], t.contextFiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("context file not found: %s", path)
}

func (t *fakeTask) ContextFiles() []string { return t.contextFiles }

func (t *fakeTask) AddMessage(role, content string) error {
	t.messages = append(t.messages, extsdk.Message{ID: uuid.NewString(), Role: role, Content: content})
	return nil
}

func (t *fakeTask) Messages() []extsdk.Message { return t.messages }

func (t *fakeTask) SetTodos(todos []extsdk.Todo) error {
	t.todos = todos
	return nil
}

func (t *fakeTask) Todos() []extsdk.Todo { return t.todos }

func (t *fakeTask) RunPrompt(_ context.Context, prompt string) error {
	t.prompts = append(t.prompts, prompt)
	return nil
}

func (t *fakeTask) AskQuestion(_ context.Context, _ string, _ []string) (string, error) {
	return t.answer, nil
}

func (t *fakeTask) RequestApproval(_ context.Context, _ string) (bool, error) {
	return t.approve, nil
}

// fakeProject is an in-memory ProjectHost for tests.
type fakeProject struct {
	dir           string
	tasks         []extsdk.TaskHost
	settings      map[string]any
	commands      []string
	notifications []string
}

func newFakeProject(dir string) *fakeProject {
	return &fakeProject{dir: dir, settings: map[string]any{}}
}

func (p *fakeProject) Dir() string { return p.dir }

func (p *fakeProject) CreateTask(_ context.Context, prompt string) (extsdk.TaskHost, error) {
	task := newFakeTask()
	task.prompts = append(task.prompts, prompt)
	p.tasks = append(p.tasks, task)
	return task, nil
}

func (p *fakeProject) Tasks() []extsdk.TaskHost { return p.tasks }

func (p *fakeProject) DeleteTask(id string) error {
	for i, t := range p.tasks {
		if t.ID() == id {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task not found: %s", id)
}

func (p *fakeProject) Setting(key string) (any, bool) {
	v, ok := p.settings[key]
	return v, ok
}

func (p *fakeProject) Commands() []string { return p.commands }

func (p *fakeProject) ShowNotification(message string) error {
	p.notifications = append(p.notifications, message)
	return nil
}

func (p *fakeProject) ShowConfirm(_ context.Context, _ string) (bool, error) { return true, nil }
func (p *fakeProject) ShowInput(_ context.Context, _ string) (string, error) { return "input", nil }

// fakeSettings is a flat in-memory SettingsStore for tests.
type fakeSettings struct {
	values map[string]any
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]any{}}
}

func (s *fakeSettings) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *fakeSettings) Update(partial map[string]any) error {
	for k, v := range partial {
		s.values[k] = v
	}
	return nil
}

// fakeProfiles is a canned AgentProfileProvider.
type fakeProfiles struct {
	profiles []extsdk.AgentProfile
	err      error
}

func (f *fakeProfiles) AgentProfiles() ([]extsdk.AgentProfile, error) {
	return f.profiles, f.err
}

// fakeModels is a canned ModelConfigProvider.
type fakeModels struct {
	configs []extsdk.ModelConfig
	err     error
}

func (f *fakeModels) ModelConfigs() ([]extsdk.ModelConfig, error) {
	return f.configs, f.err
}
