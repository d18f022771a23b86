// ABOUTME: Session state machine for the Tally portal
// ABOUTME: Owns auth status, expiry, cached dashboard, loading flag, and last error

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/markalston/tally/cli/internal/client"
)

const (
	// DefaultSessionTTL is how long the portal trusts a session cookie
	DefaultSessionTTL = 2 * time.Hour

	MsgLoginFailed    = "Login failed. Check your credentials."
	MsgSessionExpired = "Session expired. Please sign in again."

	MsgReportSubmitted = "Report submitted successfully."
	MsgReportDeclined  = "Submission failed. Try again."
)

// API is the subset of the portal client the Manager drives
type API interface {
	Login(ctx context.Context, username, password string) (bool, error)
	Logout(ctx context.Context) error
	FetchLatest(ctx context.Context) (*client.Dashboard, error)
	SubmitReport(ctx context.Context) (bool, error)
	RefreshData(ctx context.Context) (*client.Dashboard, error)
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger for session transitions
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSessionTTL overrides the session lifetime granted on login or refresh
func WithSessionTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// Manager is the single owner of session state. All fields are guarded by mu;
// network calls run without the lock and their results are applied under it,
// so overlapping operations resolve last-write-wins.
type Manager struct {
	api    API
	now    func() time.Time
	ttl    time.Duration
	logger *slog.Logger

	mu            sync.Mutex
	authenticated bool
	promptLogin   bool
	loggingIn     bool
	expiry        *time.Time
	dashboard     *client.Dashboard
	inFlight      int
	lastError     string
	// epoch advances on logout and invalidation; results from an older epoch are dropped
	epoch   uint64
	subs    map[int]chan State
	nextSub int
}

// New creates a logged-out Manager driving the given API
func New(api API, opts ...Option) *Manager {
	m := &Manager{
		api:    api,
		now:    time.Now,
		ttl:    DefaultSessionTTL,
		logger: slog.Default(),
		subs:   make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a snapshot of the current session
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Subscribe returns a channel that receives the latest State after every
// change. Slow readers only see the most recent snapshot. The returned
// function unsubscribes and closes the channel.
func (m *Manager) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

// Login authenticates and, on success, loads the dashboard
func (m *Manager) Login(ctx context.Context, username, password string) {
	m.update(func() {
		m.inFlight++
		m.lastError = ""
		m.loggingIn = true
	})
	defer m.update(func() {
		m.inFlight--
		m.loggingIn = false
	})

	ok, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.logger.Warn("login request failed", "error", err)
		m.update(func() { m.applyError(err) })
		return
	}
	if !ok {
		m.logger.Info("login rejected by portal")
		m.update(func() { m.lastError = MsgLoginFailed })
		return
	}

	m.update(func() {
		m.authenticated = true
		m.promptLogin = false
		m.loggingIn = false
		m.extend()
	})
	m.logger.Info("signed in")

	m.LoadDashboard(ctx)
}

// Logout signs out remotely on a best-effort basis and always resets local state
func (m *Manager) Logout(ctx context.Context) {
	m.begin()
	defer m.end()

	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn("remote logout failed, clearing local session anyway", "error", err)
	}

	m.update(func() {
		m.authenticated = false
		m.promptLogin = true
		m.dashboard = nil
		m.expiry = nil
		m.epoch++
	})
	m.logger.Info("signed out")
}

// LoadDashboard replaces the cached dashboard with /api/latest
func (m *Manager) LoadDashboard(ctx context.Context) {
	epoch, ok := m.requireAuth()
	if !ok {
		return
	}
	m.begin()
	defer m.end()

	dash, err := m.api.FetchLatest(ctx)
	m.update(func() {
		if epoch != m.epoch {
			return
		}
		if err != nil {
			m.applyError(err)
			return
		}
		m.dashboard = dash
	})
}

// RefreshData triggers a re-scrape, replaces the dashboard, and extends the session
func (m *Manager) RefreshData(ctx context.Context) {
	epoch, ok := m.requireAuth()
	if !ok {
		return
	}
	m.begin()
	defer m.end()

	dash, err := m.api.RefreshData(ctx)
	m.update(func() {
		if epoch != m.epoch {
			return
		}
		if err != nil {
			m.applyError(err)
			return
		}
		m.dashboard = dash
		m.extend()
	})
}

// SubmitReport submits the monthly report and returns the portal's verdict.
// Any failure, including not being signed in, yields false.
func (m *Manager) SubmitReport(ctx context.Context) bool {
	epoch, ok := m.requireAuth()
	if !ok {
		return false
	}
	m.begin()
	defer m.end()

	submitted, err := m.api.SubmitReport(ctx)
	if err != nil {
		m.update(func() {
			if epoch == m.epoch {
				m.applyError(err)
			}
		})
		return false
	}
	m.logger.Info("report submitted", "accepted", submitted)
	return submitted
}

// CheckSessionExpiry signs the user out locally once the session deadline passes
func (m *Manager) CheckSessionExpiry() {
	m.update(func() {
		if !m.authenticated {
			return
		}
		if m.expiry != nil && m.expiry.After(m.now()) {
			return
		}
		m.logger.Info("session deadline passed")
		m.invalidate()
	})
}

// ClearCache discards the cached dashboard
func (m *Manager) ClearCache() {
	m.update(func() { m.dashboard = nil })
}

// ClearError empties the last error slot
func (m *Manager) ClearError() {
	m.update(func() { m.lastError = "" })
}

// requireAuth returns the current epoch, or raises the login prompt when signed out
func (m *Manager) requireAuth() (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.authenticated {
		m.promptLogin = true
		m.publish()
		return 0, false
	}
	return m.epoch, true
}

func (m *Manager) begin() {
	m.update(func() {
		m.inFlight++
		m.lastError = ""
	})
}

func (m *Manager) end() {
	m.update(func() { m.inFlight-- })
}

// applyError must be called with mu held
func (m *Manager) applyError(err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		m.logger.Info("portal rejected session", "error", err)
		m.invalidate()
		return
	}
	m.logger.Warn("portal request failed", "error", err)
	m.lastError = err.Error()
}

// invalidate must be called with mu held
func (m *Manager) invalidate() {
	m.authenticated = false
	m.promptLogin = true
	m.lastError = MsgSessionExpired
	m.epoch++
}

// extend must be called with mu held
func (m *Manager) extend() {
	expiry := m.now().Add(m.ttl)
	m.expiry = &expiry
}

func (m *Manager) update(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
	m.publish()
}

// publish must be called with mu held
func (m *Manager) publish() {
	st := m.snapshot()
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}

// snapshot must be called with mu held
func (m *Manager) snapshot() State {
	st := State{
		Dashboard:        m.dashboard,
		Authenticated:    m.authenticated,
		PromptLogin:      m.promptLogin,
		Loading:          m.inFlight > 0,
		LastError:        m.lastError,
		DaysUntilPayment: DaysUntilPayment(m.now()),
	}
	if m.expiry != nil {
		expiry := *m.expiry
		st.SessionExpiry = &expiry
	}
	switch {
	case m.authenticated:
		st.Phase = PhaseLoggedIn
	case m.loggingIn:
		st.Phase = PhaseLoggingIn
	default:
		st.Phase = PhaseLoggedOut
	}
	return st
}
