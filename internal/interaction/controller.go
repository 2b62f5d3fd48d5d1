// Package interaction coordinates task commands with the transient state a
// view shows around them: a self-dismissing notification and the pending
// delete confirmation.
package interaction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"todolist/internal/models"
	"todolist/internal/store"
)

// NotificationDuration is how long a notification stays visible.
const NotificationDuration = 2 * time.Second

// Notification texts.
const (
	MsgAdded      = "Task added successfully"
	MsgEmptyTitle = "Task title can't be empty"
	MsgDeleted    = "Task deleted successfully"
	MsgCompleted  = "Task completed!"
	MsgIncomplete = "Task marked as incomplete"
)

// ConfirmPrompt is the question shown while a deletion awaits an answer.
const ConfirmPrompt = "Do you want to delete ?"

// Notification is the notification track as seen by a view.
type Notification struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// Confirmation is the deletion-confirmation track as seen by a view.
type Confirmation struct {
	Awaiting  bool   `json:"awaiting"`
	PendingID string `json:"pending_id,omitempty"`
}

// State is everything a view needs to render.
type State struct {
	Tasks        []models.Task `json:"tasks"`
	Notification Notification  `json:"notification"`
	Confirmation Confirmation  `json:"confirmation"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the wall-clock timer source.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithDuration overrides NotificationDuration.
func WithDuration(d time.Duration) Option {
	return func(c *Controller) { c.duration = d }
}

// WithLogger sets the logger used for command outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the notification and deletion-confirmation tracks and
// routes commands to the task store.
type Controller struct {
	store    store.Store
	sched    Scheduler
	duration time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	note        Notification
	timer       Timer
	generation  uint64
	pendingID   string
	subscribers map[int]chan struct{}
	nextSub     int
}

// New creates a Controller over s.
func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:       s,
		sched:       wallScheduler{},
		duration:    NotificationDuration,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		subscribers: make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tasks returns the current task list.
func (c *Controller) Tasks(ctx context.Context) ([]models.Task, error) {
	return c.store.List(ctx)
}

// Notification returns the current notification.
func (c *Controller) Notification() Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.note
}

// Confirmation returns the current deletion-confirmation state.
func (c *Controller) Confirmation() Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmationLocked()
}

// State returns the task list together with both tracks.
func (c *Controller) State(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.store.List(ctx)
	if err != nil {
		return State{}, err
	}
	return State{
		Tasks:        tasks,
		Notification: c.note,
		Confirmation: c.confirmationLocked(),
	}, nil
}

// RequestAdd adds a task and reports the outcome as a notification.
// An empty title yields models.ErrEmptyTitle after notifying.
func (c *Controller) RequestAdd(ctx context.Context, title string) (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, err := c.store.Add(ctx, title)
	if err != nil {
		if errors.Is(err, models.ErrEmptyTitle) {
			c.logger.Debug("rejected empty task title")
			c.notifyLocked(MsgEmptyTitle)
		}
		return models.Task{}, err
	}

	c.logger.Debug("task added", "id", task.ID)
	c.notifyLocked(MsgAdded)
	return task, nil
}

// RequestToggle flips a task and notifies with the direction of the change.
// An unknown id returns models.ErrTaskNotFound without notifying.
func (c *Controller) RequestToggle(ctx context.Context, id string) (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before, err := c.store.Get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	task, err := c.store.Toggle(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	c.logger.Debug("task toggled", "id", id, "completed", task.Completed)
	if before.Completed {
		c.notifyLocked(MsgIncomplete)
	} else {
		c.notifyLocked(MsgCompleted)
	}
	return task, nil
}

// RequestDelete asks for confirmation before deleting id. An id that is not
// in the store leaves the state untouched and returns models.ErrTaskNotFound.
func (c *Controller) RequestDelete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.store.Get(ctx, id); err != nil {
		return err
	}

	c.pendingID = id
	c.logger.Debug("delete awaiting confirmation", "id", id)
	c.broadcastLocked()
	return nil
}

// ConfirmDelete deletes the pending task. It is a no-op when nothing is pending.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingID == "" {
		return nil
	}

	id := c.pendingID
	c.pendingID = ""

	if err := c.store.Delete(ctx, id); err != nil {
		c.broadcastLocked()
		return err
	}

	c.logger.Debug("task deleted", "id", id)
	c.notifyLocked(MsgDeleted)
	return nil
}

// CancelDelete drops the pending deletion without notifying.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingID == "" {
		return
	}
	c.logger.Debug("delete cancelled", "id", c.pendingID)
	c.pendingID = ""
	c.broadcastLocked()
}

// Notify shows text, replacing any visible notification and its timer.
func (c *Controller) Notify(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifyLocked(text)
}

// Subscribe returns a channel that receives a value after every state
// change, and a function that ends the subscription. Signals coalesce.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan struct{}, 1)
	c.subscribers[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Close stops the pending notification timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// notifyLocked stops the previous timer before arming the next one, so at
// most one expiry is ever pending.
func (c *Controller) notifyLocked(text string) {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.generation++
	gen := c.generation
	c.note = Notification{Visible: true, Text: text}
	c.timer = c.sched.AfterFunc(c.duration, func() { c.expire(gen) })
	c.broadcastLocked()
}

// expire hides the notification armed with gen, unless a newer one replaced it.
func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	c.note.Visible = false
	c.timer = nil
	c.broadcastLocked()
}

func (c *Controller) confirmationLocked() Confirmation {
	return Confirmation{Awaiting: c.pendingID != "", PendingID: c.pendingID}
}

func (c *Controller) broadcastLocked() {
	for _, ch := range c.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
