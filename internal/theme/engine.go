package theme

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/event"
)

// TopicSelected is published after every propagation.
const TopicSelected = "theme.selected"

// SelectedEvent is the payload of TopicSelected.
type SelectedEvent struct {
	ID        ID         `json:"theme_id"`
	Name      string     `json:"name"`
	Marker    string     `json:"marker"`
	Variables []Variable `json:"variables"`
}

// Publisher is the slice of the event bus the engine needs.
type Publisher interface {
	Publish(ctx context.Context, e event.Event) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPublisher makes the engine announce every propagation on p.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// Engine owns the active theme. Construct one per process and inject it.
type Engine struct {
	store     Store
	sink      Sink
	publisher Publisher
	logger    *zap.Logger

	selectMu sync.Mutex // serializes Select/Reset so sink writes never interleave
	mu       sync.RWMutex
	active   ID
}

// New resolves the startup theme from store and propagates it once. A
// missing, unreadable or unknown persisted id falls back to DefaultID.
func New(ctx context.Context, store Store, sink Sink, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:  store,
		sink:   sink,
		logger: zap.NewNop(),
		active: DefaultID,
	}
	for _, opt := range opts {
		opt(e)
	}

	if store != nil {
		stored, err := store.Load(ctx)
		switch {
		case err != nil:
			e.logger.Warn("failed to load persisted theme, using default", zap.Error(err))
		case stored == "":
		default:
			if _, ok := Lookup(ID(stored)); ok {
				e.active = ID(stored)
			} else {
				e.logger.Warn("ignoring unknown persisted theme", zap.String("theme_id", stored))
			}
		}
	}

	e.propagate(ctx, e.active)
	return e, nil
}

// Active returns the current theme id and record.
func (e *Engine) Active() (ID, Theme) {
	e.mu.RLock()
	id := e.active
	e.mu.RUnlock()
	t, _ := Lookup(id)
	return id, t
}

// Select makes id active, persists it and propagates it. Unknown ids are
// ignored and return nil. A persistence failure is returned after the new
// theme has been applied in memory and propagated.
func (e *Engine) Select(ctx context.Context, id ID) error {
	if _, ok := Lookup(id); !ok {
		e.logger.Debug("ignoring unknown theme", zap.String("theme_id", string(id)))
		return nil
	}

	e.selectMu.Lock()
	defer e.selectMu.Unlock()

	e.mu.Lock()
	e.active = id
	e.mu.Unlock()

	var saveErr error
	if e.store != nil {
		if saveErr = e.store.Save(ctx, string(id)); saveErr != nil {
			e.logger.Error("failed to persist theme selection",
				zap.String("theme_id", string(id)), zap.Error(saveErr))
		}
	}

	e.propagate(ctx, id)
	e.logger.Info("theme selected", zap.String("theme_id", string(id)))
	return saveErr
}

// Reset returns to DefaultID without touching the store.
func (e *Engine) Reset(ctx context.Context) {
	e.selectMu.Lock()
	defer e.selectMu.Unlock()

	e.mu.Lock()
	e.active = DefaultID
	e.mu.Unlock()
	e.propagate(ctx, DefaultID)
}

func (e *Engine) propagate(ctx context.Context, id ID) {
	t, _ := Lookup(id)
	vars := Variables(t)
	if e.sink != nil {
		for _, v := range vars {
			e.sink.SetVariable(v.Name, v.Value)
		}
		e.sink.SetMarker(MarkerFor(id))
	}

	if e.publisher == nil {
		return
	}
	err := e.publisher.Publish(ctx, event.Event{
		Topic:     TopicSelected,
		Source:    "theme",
		Timestamp: time.Now().UTC(),
		Payload: SelectedEvent{
			ID:        id,
			Name:      t.Name,
			Marker:    MarkerFor(id),
			Variables: vars,
		},
	})
	if err != nil {
		e.logger.Warn("failed to publish theme change", zap.Error(err))
	}
}
