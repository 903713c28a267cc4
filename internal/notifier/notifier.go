package notifier

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event kinds emitted by the application.
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailure         = "login_failure"
	EventLogout               = "logout"
	EventSubmissionSuccess    = "submission_success"
	EventSubmissionFailure    = "submission_failure"
	EventStatusChange         = "status_change"
	EventDeletion             = "deletion"
	EventPaymentAccountChange = "payment_account_change"
	EventInternalError        = "internal_error"
)

// Embed colors per event severity.
const (
	colorInfo    = 0x2563eb
	colorSuccess = 0x16a34a
	colorDanger  = 0xdc2626
)

// job is one queued webhook delivery.
type job struct {
	kind     string
	embed    Embed
	attempt  int
	enqueued time.Time
}

// Config tunes the delivery queue.
type Config struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// Notifier dispatches structured events to a Discord webhook through an
// in-process worker queue. Emit never blocks the caller and delivery failures
// are logged, never propagated.
type Notifier struct {
	client *Client
	logger *zap.Logger

	workers    int
	maxRetries int
	retryDelay time.Duration

	jobs    chan job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// New builds a Notifier around the given webhook client.
func New(client *Client, logger *zap.Logger, cfg Config) *Notifier {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 16
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Notifier{
		client:     client,
		logger:     logger,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		jobs:       make(chan job, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started {
		return
	}
	n.ctx, n.cancel = context.WithCancel(ctx)
	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
	n.started = true
	n.logger.Sugar().Infow("notifier started", "workers", n.workers, "enabled", n.client.Enabled())
}

// Stop cancels workers and waits for them to exit.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.started {
		n.mu.Unlock()
		return
	}
	n.cancel()
	n.mu.Unlock()
	n.wg.Wait()
	n.logger.Sugar().Infow("notifier stopped")
}

// Emit queues an event for delivery. It drops the event (with a log line)
// when the queue is full or not started; it never blocks.
func (n *Notifier) Emit(kind string, fields ...EmbedField) {
	if n == nil || !n.client.Enabled() {
		return
	}

	n.mu.Lock()
	started := n.started
	n.mu.Unlock()
	if !started {
		n.logger.Sugar().Warnw("notifier not started, dropping event", "kind", kind)
		return
	}

	j := job{kind: kind, embed: buildEmbed(kind, fields), enqueued: time.Now().UTC()}
	select {
	case n.jobs <- j:
	default:
		n.logger.Sugar().Warnw("notifier queue full, dropping event", "kind", kind)
	}
}

// EmitError reports an internal error with truncated detail.
func (n *Notifier) EmitError(scope string, err error) {
	if err == nil {
		return
	}
	n.Emit(EventInternalError,
		EmbedField{Name: "Context", Value: scope},
		EmbedField{Name: "Error", Value: Truncate(err.Error())},
	)
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for {
		select {
		case <-n.ctx.Done():
			return
		case j := <-n.jobs:
			if err := n.client.Send(n.ctx, j.embed); err != nil {
				n.handleFailure(j, err)
			}
		}
	}
}

func (n *Notifier) handleFailure(j job, err error) {
	j.attempt++
	if j.attempt > n.maxRetries {
		n.logger.Sugar().Errorw("webhook delivery exceeded retries", "kind", j.kind, "error", err)
		return
	}
	n.logger.Sugar().Warnw("webhook delivery failed, retrying", "kind", j.kind, "attempt", j.attempt, "error", err)

	go func(j job) {
		timer := time.NewTimer(n.retryDelay)
		defer timer.Stop()
		select {
		case <-n.ctx.Done():
			return
		case <-timer.C:
			select {
			case n.jobs <- j:
			default:
				n.logger.Sugar().Errorw("failed to requeue webhook delivery", "kind", j.kind)
			}
		}
	}(j)
}

func buildEmbed(kind string, fields []EmbedField) Embed {
	title, description, color := embedHeader(kind)
	return Embed{
		Title:       title,
		Description: description,
		Color:       color,
		Fields:      fields,
	}
}

func embedHeader(kind string) (string, string, int) {
	switch kind {
	case EventLoginSuccess:
		return "🔓 Admin Login", "An admin signed in to the dashboard", colorSuccess
	case EventLoginFailure:
		return "🚫 Failed Login Attempt", "An admin login attempt was rejected", colorDanger
	case EventLogout:
		return "🔒 Admin Logout", "An admin session was closed", colorInfo
	case EventSubmissionSuccess:
		return "📝 New Application", "A new application has been submitted", colorSuccess
	case EventSubmissionFailure:
		return "⚠️ Submission Failed", "An application submission was rejected", colorDanger
	case EventStatusChange:
		return "🔄 Status Changed", "An application's review status was updated", colorInfo
	case EventDeletion:
		return "🗑️ Application Deleted", "An application has been deleted from the system", colorDanger
	case EventPaymentAccountChange:
		return "💳 Payment Account Switched", "The advertised UPI account was changed", colorInfo
	case EventInternalError:
		return "❌ Internal Error", "An unexpected error occurred", colorDanger
	default:
		return "ℹ️ Event", kind, colorInfo
	}
}
