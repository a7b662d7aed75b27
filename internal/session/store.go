// Package session holds the single process-wide login session and gates
// the client's navigation areas on it.
package session

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"vehicle-service-scheduler/internal/auth"
	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/metrics"
	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/nav"
)

var tracer = otel.Tracer("scheduler/session")

// Store is Anonymous until Login succeeds or Restore finds a valid flag.
type Store struct {
	creds   *auth.Credentials
	persist *Persister
	logger  *logging.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	current  *model.Session
	onLogout []func()
}

func New(creds *auth.Credentials, persist *Persister, logger *logging.Logger, m *metrics.Metrics) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{creds: creds, persist: persist, logger: logger, metrics: m}
}

// OnLogout registers fn to run on every logout, after the session is dropped.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Current returns the active session, if any.
func (s *Store) Current() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Session{}, false
	}
	return *s.current, true
}

// Login signs in from Anonymous. While signed in, only the current
// account's credentials are accepted; they return the current session so
// the caller can hand out a fresh token. Any other pair is
// ErrAlreadySignedIn.
func (s *Store) Login(ctx context.Context, email, password string) (model.Session, error) {
	ctx, span := tracer.Start(ctx, "session.login")
	defer span.End()

	sess, err := s.creds.Check(email, password)
	if cur, authed := s.Current(); authed {
		if err != nil || sess.Email != auth.NormalizeEmail(cur.Email) {
			s.metrics.ObserveLogin("already_signed_in")
			span.RecordError(model.ErrAlreadySignedIn)
			return model.Session{}, model.ErrAlreadySignedIn
		}
		s.metrics.ObserveLogin("renewed")
		s.logger.Info("login renewed", "email", cur.Email)
		return cur, nil
	}
	if err != nil {
		s.metrics.ObserveLogin("invalid")
		span.RecordError(err)
		s.logger.Info("login rejected", "email", auth.NormalizeEmail(email))
		return model.Session{}, err
	}
	span.SetAttributes(attribute.String("scheduler.session.role", string(sess.Role)))

	if err := s.persist.Write(ctx, sess); err != nil {
		s.metrics.ObserveLogin("storage_error")
		span.RecordError(err)
		s.logger.Error("persist session failed", "error", err)
		return model.Session{}, err
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.metrics.ObserveLogin("ok")
	s.logger.Info("login", "email", sess.Email, "role", sess.Role)
	return sess, nil
}

// Logout always ends the session. A failure to clear the persisted flag is
// still reported.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	if err := s.persist.Clear(ctx); err != nil {
		s.logger.Error("clear session failed", "error", err)
		return err
	}
	s.logger.Info("logout")
	return nil
}

// Restore loads the persisted flag. Unreadable or malformed flags leave the
// store Anonymous.
func (s *Store) Restore(ctx context.Context) model.Session {
	sess, err := s.persist.Read(ctx)
	if err != nil {
		s.logger.Warn("session flag unreadable, starting anonymous", "error", err)
		return s.set(nil)
	}
	return s.set(sess)
}

func (s *Store) set(sess *model.Session) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
	if sess == nil {
		return model.Session{}
	}
	return *sess
}

// Gate reports whether area is reachable in the current state. When it is
// not, the returned route is where the client should go instead.
func (s *Store) Gate(area nav.Area) (bool, nav.Route) {
	_, authed := s.Current()
	switch {
	case authed && area == nav.AreaAuth:
		return false, nav.To(nav.Home)
	case !authed && area != nav.AreaAuth:
		return false, nav.To(nav.Login)
	}
	return true, nav.Route{}
}

// Register checks the sign-up form. Accounts are fixed, so a valid form
// only sends the user on to login.
func (s *Store) Register(r auth.Registration) (nav.Route, error) {
	if err := auth.ValidateRegistration(r); err != nil {
		return nav.Route{}, err
	}
	s.logger.Info("registration accepted", "email", auth.NormalizeEmail(r.Email))
	return nav.To(nav.Login), nil
}
