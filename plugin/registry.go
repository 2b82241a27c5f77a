package plugin

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"termchat/autocomplete"

	"github.com/google/uuid"
)

// Unbounded is the MaxArgs value for commands that accept any number of
// arguments above MinArgs.
const Unbounded = -1

// CommandSpec describes a plugin command. It is immutable once registered.
type CommandSpec struct {
	Name      string
	MinArgs   int
	MaxArgs   int
	Usage     string
	ShortHelp string
	LongHelp  string
	Callback  Callback
	// Owner is the name of the plugin that registered the command.
	Owner string
}

// AcceptsArgs reports whether n arguments are inside the command's bounds.
func (c *CommandSpec) AcceptsArgs(n int) bool {
	if n < c.MinArgs {
		return false
	}
	return c.MaxArgs == Unbounded || n <= c.MaxArgs
}

// TaskID identifies a registered timed task.
type TaskID string

// TimedTask is a callback fired every Interval. Elapsed time is measured from
// the task's own last fire (or its registration).
type TimedTask struct {
	ID       TaskID
	Owner    string
	Callback Callback
	Interval time.Duration

	lastReset time.Time
	disabled  bool
	removed   bool
	fired     int
	lastErr   error
}

// Due reports whether the task should fire at now.
func (t *TimedTask) Due(now time.Time) bool {
	return !t.disabled && !t.removed && now.Sub(t.lastReset) >= t.Interval
}

// Disabled reports whether the task was switched off after a failure.
func (t *TimedTask) Disabled() bool { return t.disabled }

// LastErr returns the error that disabled the task, if any.
func (t *TimedTask) LastErr() error { return t.lastErr }

// Fired returns how many times the callback has been invoked.
func (t *TimedTask) Fired() int { return t.fired }

// LastReset returns the time elapsed is measured from.
func (t *TimedTask) LastReset() time.Time { return t.lastReset }

// WindowBinding ties a plugin window tag to its owner and optional
// notification callback. The window itself lives in the host's window table
// and is looked up by tag on every use.
type WindowBinding struct {
	Tag      string
	Owner    string
	Callback Callback
}

type completionSet struct {
	owner string
	ac    *autocomplete.Autocomplete
}

// Registry owns every plugin registration. It is created by the host at
// startup and handed to the dispatcher, scheduler, mediator and binder.
//
// A Registry is not safe for concurrent use. It is driven from the host loop,
// and registrations made from inside a callback are safe because every
// component iterates over snapshots.
type Registry struct {
	clock Clock

	commands    map[string]*CommandSpec
	tasks       []*TimedTask
	taskIndex   map[TaskID]*TimedTask
	bindings    map[string]*WindowBinding
	completions map[string]*completionSet

	// reserved reports names the host handles itself.
	reserved func(name string) bool
}

// NewRegistry creates an empty registry. A nil clock uses the system clock.
func NewRegistry(clock Clock) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Registry{
		clock:       clock,
		commands:    make(map[string]*CommandSpec),
		taskIndex:   make(map[TaskID]*TimedTask),
		bindings:    make(map[string]*WindowBinding),
		completions: make(map[string]*completionSet),
	}
}

// Clock returns the registry's clock.
func (r *Registry) Clock() Clock {
	return r.clock
}

// SetReserved installs a check for command names owned by the host. Plugins
// cannot register a reserved name.
func (r *Registry) SetReserved(reserved func(name string) bool) {
	r.reserved = reserved
}

// RegisterCommand adds a command. Names are unique across plugins and the
// host's reserved names; a clash fails with ErrDuplicateCommand.
func (r *Registry) RegisterCommand(spec CommandSpec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("register command: %w", ErrEmptyName)
	}
	if spec.Callback == nil {
		return fmt.Errorf("register command %s: %w", spec.Name, ErrNilCallback)
	}
	if spec.MinArgs < 0 || (spec.MaxArgs != Unbounded && spec.MaxArgs < spec.MinArgs) {
		return fmt.Errorf("register command %s: %w: min %d, max %d",
			spec.Name, ErrInvalidArity, spec.MinArgs, spec.MaxArgs)
	}
	if r.reserved != nil && r.reserved(spec.Name) {
		return fmt.Errorf("register command %s: %w by the client", spec.Name, ErrDuplicateCommand)
	}
	if existing, exists := r.commands[spec.Name]; exists {
		return fmt.Errorf("register command %s: %w by %q", spec.Name, ErrDuplicateCommand, existing.Owner)
	}

	stored := spec
	r.commands[spec.Name] = &stored
	return nil
}

// RegisterTimed adds a task firing every intervalSeconds. The first fire
// happens one interval after registration.
func (r *Registry) RegisterTimed(owner string, cb Callback, intervalSeconds int) (TaskID, error) {
	if cb == nil {
		return "", fmt.Errorf("register timed: %w", ErrNilCallback)
	}
	if intervalSeconds < 1 {
		return "", fmt.Errorf("register timed: %w (got %d)", ErrInvalidInterval, intervalSeconds)
	}

	task := &TimedTask{
		ID:        TaskID(uuid.NewString()),
		Owner:     owner,
		Callback:  cb,
		Interval:  time.Duration(intervalSeconds) * time.Second,
		lastReset: r.clock.Now(),
	}
	r.tasks = append(r.tasks, task)
	r.taskIndex[task.ID] = task
	return task.ID, nil
}

// RegisterAutocomplete replaces the candidate set stored under key.
func (r *Registry) RegisterAutocomplete(owner, key string, items []string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("register autocomplete: %w", ErrEmptyName)
	}
	if set, exists := r.completions[key]; exists {
		set.owner = owner
		set.ac.Replace(items)
		return nil
	}
	r.completions[key] = &completionSet{owner: owner, ac: autocomplete.New(items...)}
	return nil
}

// RegisterWindowHandler binds tag to an owner and an optional callback that
// receives lines typed into the tag's window.
func (r *Registry) RegisterWindowHandler(owner, tag string, cb Callback) error {
	if strings.TrimSpace(tag) == "" {
		return fmt.Errorf("register window handler: %w", ErrEmptyName)
	}
	if existing, exists := r.bindings[tag]; exists {
		return fmt.Errorf("register window handler %s: %w by %q", tag, ErrDuplicateWindow, existing.Owner)
	}
	r.bindings[tag] = &WindowBinding{Tag: tag, Owner: owner, Callback: cb}
	return nil
}

// Command looks up a command by name.
func (r *Registry) Command(name string) (*CommandSpec, bool) {
	spec, ok := r.commands[name]
	return spec, ok
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []*CommandSpec {
	out := make([]*CommandSpec, 0, len(r.commands))
	for _, spec := range r.commands {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TimedTasks returns a snapshot of the tasks in registration order.
func (r *Registry) TimedTasks() []*TimedTask {
	out := make([]*TimedTask, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// TimedTask looks up a task by ID.
func (r *Registry) TimedTask(id TaskID) (*TimedTask, bool) {
	task, ok := r.taskIndex[id]
	return task, ok
}

// WindowBinding looks up the binding for tag.
func (r *Registry) WindowBinding(tag string) (*WindowBinding, bool) {
	b, ok := r.bindings[tag]
	return b, ok
}

// WindowBindings returns the bindings sorted by tag.
func (r *Registry) WindowBindings() []*WindowBinding {
	out := make([]*WindowBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// autocomplete returns the completer stored under key.
func (r *Registry) autocomplete(key string) (*autocomplete.Autocomplete, bool) {
	set, ok := r.completions[key]
	if !ok {
		return nil, false
	}
	return set.ac, true
}

// AutocompleteKeys returns the registered keys sorted longest first, so that
// more specific keys win when completing an input line.
func (r *Registry) AutocompleteKeys() []string {
	keys := make([]string, 0, len(r.completions))
	for key := range r.completions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// AutocompleteItems returns a copy of the candidates under key.
func (r *Registry) AutocompleteItems(key string) []string {
	ac, ok := r.autocomplete(key)
	if !ok {
		return nil
	}
	return ac.Items()
}

// RemoveCommand deletes a command. It reports whether it existed.
func (r *Registry) RemoveCommand(name string) bool {
	if _, exists := r.commands[name]; !exists {
		return false
	}
	delete(r.commands, name)
	return true
}

// RemoveTimed deletes a task. A removed task is never invoked again, even if
// it was part of a scheduling pass that is still running.
func (r *Registry) RemoveTimed(id TaskID) bool {
	task, exists := r.taskIndex[id]
	if !exists {
		return false
	}
	task.removed = true
	delete(r.taskIndex, id)
	for i, t := range r.tasks {
		if t == task {
			r.tasks = append(r.tasks[:i:i], r.tasks[i+1:]...)
			break
		}
	}
	return true
}

// RemoveWindowHandler deletes the binding for tag.
func (r *Registry) RemoveWindowHandler(tag string) bool {
	if _, exists := r.bindings[tag]; !exists {
		return false
	}
	delete(r.bindings, tag)
	return true
}

// RemoveAutocomplete deletes the candidate set under key.
func (r *Registry) RemoveAutocomplete(key string) bool {
	if _, exists := r.completions[key]; !exists {
		return false
	}
	delete(r.completions, key)
	return true
}

// UnloadStats counts what Unload removed.
type UnloadStats struct {
	Commands      int
	Tasks         int
	Windows       int
	Autocompletes int
}

// Unload removes every registration made by owner.
func (r *Registry) Unload(owner string) UnloadStats {
	var stats UnloadStats
	for name, spec := range r.commands {
		if spec.Owner == owner {
			delete(r.commands, name)
			stats.Commands++
		}
	}
	for _, task := range r.TimedTasks() {
		if task.Owner == owner && r.RemoveTimed(task.ID) {
			stats.Tasks++
		}
	}
	for tag, b := range r.bindings {
		if b.Owner == owner {
			delete(r.bindings, tag)
			stats.Windows++
		}
	}
	for key, set := range r.completions {
		if set.owner == owner {
			delete(r.completions, key)
			stats.Autocompletes++
		}
	}
	return stats
}

// isLive reports whether task is still registered.
func (r *Registry) isLive(task *TimedTask) bool {
	return !task.removed && r.taskIndex[task.ID] == task
}
