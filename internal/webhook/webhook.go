// Package webhook forwards storefront events to an external HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/contact"
	"github.com/HerbHall/storefront/internal/event"
	"github.com/HerbHall/storefront/internal/theme"
	"github.com/HerbHall/storefront/internal/version"
)

const queueSize = 64

// Config holds the webhook section.
type Config struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Enabled bool          `mapstructure:"enabled"`
	Topics  []string      `mapstructure:"topics"`
}

// DefaultConfig forwards contact submissions and theme changes once a URL is set.
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Enabled: true,
		Topics:  []string{contact.TopicSubmitted, theme.TopicSelected},
	}
}

// Payload is the JSON body sent to the webhook URL.
type Payload struct {
	Event     string `json:"event"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithHTTPClient replaces the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(n *Notifier) { n.client = hc }
}

// Notifier queues bus events and POSTs them from a single worker, so a slow
// endpoint never holds up the publisher.
type Notifier struct {
	cfg    Config
	bus    *event.Bus
	client *http.Client
	logger *zap.Logger

	queue    chan event.Event
	stopped  chan struct{}
	done     chan struct{}
	unsubs   []func()
	stopOnce sync.Once
}

// New creates a notifier. Nothing is subscribed until Start.
func New(cfg Config, bus *event.Bus, logger *zap.Logger, opts ...Option) *Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Notifier{
		cfg:     cfg,
		bus:     bus,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		queue:   make(chan event.Event, queueSize),
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Active reports whether Start will subscribe anything.
func (n *Notifier) Active() bool {
	return n.cfg.Enabled && n.cfg.URL != "" && n.bus != nil && len(n.cfg.Topics) > 0
}

// Start subscribes to the configured topics and starts the delivery worker.
func (n *Notifier) Start(ctx context.Context) {
	if !n.Active() {
		n.logger.Info("webhook notifications disabled",
			zap.Bool("enabled", n.cfg.Enabled),
			zap.Bool("url_set", n.cfg.URL != ""),
		)
		close(n.done)
		return
	}

	for _, topic := range n.cfg.Topics {
		n.unsubs = append(n.unsubs, n.bus.Subscribe(topic, n.enqueue))
	}
	go n.run(ctx)

	n.logger.Info("webhook notifications enabled",
		zap.String("url", n.cfg.URL),
		zap.Strings("topics", n.cfg.Topics),
		zap.Duration("timeout", n.cfg.Timeout),
	)
}

// Stop unsubscribes, delivers whatever is still queued and waits for the
// worker to exit. Call it only after Start.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		for _, unsub := range n.unsubs {
			unsub()
		}
		close(n.stopped)
	})
	<-n.done
}

func (n *Notifier) enqueue(_ context.Context, e event.Event) {
	select {
	case <-n.stopped:
		return
	default:
	}
	select {
	case n.queue <- e:
	default:
		n.logger.Warn("webhook queue full, dropping event", zap.String("topic", e.Topic))
	}
}

func (n *Notifier) run(ctx context.Context) {
	defer close(n.done)
	for {
		select {
		case e := <-n.queue:
			n.deliver(ctx, e)
		case <-ctx.Done():
			return
		case <-n.stopped:
			for {
				select {
				case e := <-n.queue:
					n.deliver(context.WithoutCancel(ctx), e)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, e event.Event) {
	body, err := json.Marshal(Payload{
		Event:     e.Topic,
		Source:    e.Source,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Data:      e.Payload,
	})
	if err != nil {
		n.logger.Error("failed to marshal webhook payload", zap.String("topic", e.Topic), zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("failed to create webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Storefront-Webhook/"+version.Short())

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed", zap.String("topic", e.Topic), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		n.logger.Warn("webhook endpoint returned error",
			zap.String("topic", e.Topic),
			zap.Int("status_code", resp.StatusCode),
		)
		return
	}
	n.logger.Debug("webhook delivered", zap.String("topic", e.Topic), zap.Int("status_code", resp.StatusCode))
}
