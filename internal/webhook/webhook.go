// Package webhook forwards theme changes to an external HTTP endpoint, for
// example to purge a CDN copy of a tenant's stylesheet.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/event"
	"github.com/HerbHall/brandkit/internal/theme"
	"github.com/HerbHall/brandkit/internal/themestore"
	"github.com/HerbHall/brandkit/internal/version"
)

var deliveries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "brandkit_webhook_deliveries_total",
		Help: "Webhook deliveries by result.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(deliveries)
}

// Config holds the webhook configuration.
type Config struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Enabled bool          `mapstructure:"enabled"`
}

// queueSize bounds pending deliveries; later events are dropped.
const queueSize = 64

// Payload is the JSON body sent to the webhook URL.
type Payload struct {
	Event     string `json:"event"`
	Tenant    string `json:"tenant,omitempty"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

// ThemeData is the data of a theme.applied notification.
type ThemeData struct {
	PresetID string `json:"preset_id"`
	DarkMode bool   `json:"dark_mode"`
	Checksum string `json:"checksum"`
}

// PresetData is the data of a theme.preset_registered notification.
type PresetData struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// Notifier posts bus events to a URL from a single background worker, so
// publishers never wait on the network.
type Notifier struct {
	logger *zap.Logger
	cfg    Config
	client *http.Client

	mu     sync.Mutex // guards closed and sends on queue
	closed bool
	queue  chan Payload
	done   chan struct{}
	once   sync.Once
	unsub  []func()
}

// New creates a Notifier and starts its worker. Call Close to stop it.
func New(cfg Config, logger *zap.Logger) *Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	n := &Notifier{
		logger: logger,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		queue:  make(chan Payload, queueSize),
		done:   make(chan struct{}),
	}

	if cfg.URL == "" {
		logger.Warn("webhook URL not configured; notifications will be dropped",
			zap.String("component", "webhook"),
		)
	}
	logger.Info("webhook notifier initialized",
		zap.String("url", cfg.URL),
		zap.Duration("timeout", cfg.Timeout),
		zap.Bool("enabled", cfg.Enabled),
	)

	go n.run()
	return n
}

// Subscribe attaches the notifier to the bus's theme topics.
func (n *Notifier) Subscribe(bus *event.Bus) {
	n.unsub = append(n.unsub,
		bus.Subscribe(event.TopicThemeApplied, n.handleEvent),
		bus.Subscribe(event.TopicPresetRegistered, n.handleEvent),
	)
}

// Close unsubscribes, drains queued deliveries and stops the worker.
func (n *Notifier) Close() {
	n.once.Do(func() {
		for _, u := range n.unsub {
			u()
		}
		n.mu.Lock()
		n.closed = true
		close(n.queue)
		n.mu.Unlock()
		<-n.done
	})
}

func (n *Notifier) handleEvent(_ context.Context, e event.Event) {
	if !n.cfg.Enabled || n.cfg.URL == "" {
		return
	}

	p := Payload{
		Event:     e.Topic,
		Tenant:    e.Tenant,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
	}
	switch v := e.Payload.(type) {
	case themestore.Update:
		p.Data = ThemeData{PresetID: v.PresetID, DarkMode: v.DarkMode, Checksum: v.Checksum}
	case theme.PresetEntry:
		p.Data = PresetData{ID: v.ID, Version: v.Version}
	default:
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		deliveries.WithLabelValues("dropped").Inc()
		n.logger.Debug("webhook notifier closed, dropping notification",
			zap.String("topic", e.Topic),
			zap.String("tenant", e.Tenant),
		)
		return
	}
	select {
	case n.queue <- p:
	default:
		deliveries.WithLabelValues("dropped").Inc()
		n.logger.Warn("webhook queue full, dropping notification",
			zap.String("topic", e.Topic),
			zap.String("tenant", e.Tenant),
		)
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for p := range n.queue {
		body, err := json.Marshal(p)
		if err != nil {
			n.logger.Error("failed to marshal webhook payload",
				zap.String("topic", p.Event),
				zap.Error(err),
			)
			continue
		}
		n.send(context.Background(), body, p.Event)
	}
}

func (n *Notifier) send(ctx context.Context, body []byte, topic string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		deliveries.WithLabelValues("failed").Inc()
		n.logger.Error("failed to create webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "brandkit-webhook/"+version.Short())

	resp, err := n.client.Do(req)
	if err != nil {
		deliveries.WithLabelValues("failed").Inc()
		n.logger.Warn("webhook delivery failed",
			zap.String("url", n.cfg.URL),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		deliveries.WithLabelValues("failed").Inc()
		n.logger.Warn("webhook endpoint returned error",
			zap.String("url", n.cfg.URL),
			zap.String("topic", topic),
			zap.Int("status_code", resp.StatusCode),
		)
		return
	}

	deliveries.WithLabelValues("delivered").Inc()
	n.logger.Debug("webhook delivered",
		zap.String("topic", topic),
		zap.Int("status_code", resp.StatusCode),
	)
}
