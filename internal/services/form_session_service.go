package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/harvey-allen/credit-risk-app/internal/creditform"
	"github.com/harvey-allen/credit-risk-app/internal/metrics"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

var ErrSessionNotFound = errors.New("session_not_found")

// SessionState is a point-in-time copy of one form session.
type SessionState struct {
	ID         string
	Values     creditform.Application
	Status     creditform.Status
	Submitting bool
}

// FormSessionService keeps one creditform.Controller per open form.
type FormSessionService interface {
	Open(ctx context.Context) (SessionState, error)
	State(ctx context.Context, id string) (SessionState, error)
	Change(ctx context.Context, id string, name creditform.FieldName, value string) (SessionState, error)
	Submit(ctx context.Context, id string) (SessionState, error)
	SubmitChecked(ctx context.Context, id string, check creditform.Check) (SessionState, error)
	Dismiss(ctx context.Context, id string) (SessionState, error)
	Close(ctx context.Context, id string) error
	SweepIdle(ctx context.Context) int
	Ping(ctx context.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type formSession struct {
	ctrl     *creditform.Controller
	lastSeen time.Time
}

type formSessionService struct {
	scorer   creditform.Scorer
	receipts ReceiptService
	idleTTL  time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*formSession
}

func NewFormSessionService(
	scorer creditform.Scorer,
	receipts ReceiptService,
	idleTTL time.Duration,
) FormSessionService {
	if receipts == nil {
		receipts = noopReceiptService{}
	}
	return &formSessionService{
		scorer:   scorer,
		receipts: receipts,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*formSession),
	}
}

// ------------------------------------------------------------------
// Public API
// ------------------------------------------------------------------

func (s *formSessionService) Open(_ context.Context) (SessionState, error) {
	id := uuid.NewString()
	sess := &formSession{ctrl: creditform.NewController(s.scorer), lastSeen: s.now()}

	s.mu.Lock()
	s.sessions[id] = sess
	open := len(s.sessions)
	s.mu.Unlock()

	metrics.OpenSessions.Set(float64(open))
	utils.Logger.WithField("session_id", id).Debug("Opened form session")
	return stateOf(id, sess.ctrl), nil
}

func (s *formSessionService) State(_ context.Context, id string) (SessionState, error) {
	sess, err := s.touch(id)
	if err != nil {
		return SessionState{}, err
	}
	return stateOf(id, sess.ctrl), nil
}

func (s *formSessionService) Change(
	_ context.Context,
	id string,
	name creditform.FieldName,
	value string,
) (SessionState, error) {
	sess, err := s.touch(id)
	if err != nil {
		return SessionState{}, err
	}
	if err := sess.ctrl.Change(name, value); err != nil {
		return SessionState{}, err
	}
	return stateOf(id, sess.ctrl), nil
}

// Submit runs one scoring request for the session. The request is detached
// from ctx's cancellation: a client that goes away does not abort it.
func (s *formSessionService) Submit(ctx context.Context, id string) (SessionState, error) {
	return s.SubmitChecked(ctx, id, nil)
}

// SubmitChecked runs check against the values being dispatched. A failed
// check is returned with the unchanged session state.
func (s *formSessionService) SubmitChecked(
	ctx context.Context,
	id string,
	check creditform.Check,
) (SessionState, error) {
	sess, err := s.touch(id)
	if err != nil {
		return SessionState{}, err
	}

	ctx = context.WithoutCancel(ctx)
	logger := utils.Logger.WithField("session_id", id)

	start := time.Now()
	res, err := sess.ctrl.SubmitChecked(ctx, check)
	if errors.Is(err, creditform.ErrSubmissionInFlight) {
		metrics.DuplicateSubmitsTotal.Inc()
		logger.Debug("Refused duplicate submission")
		return stateOf(id, sess.ctrl), err
	}
	if err != nil {
		logger.WithError(err).Debug("Submission stopped before dispatch")
		return stateOf(id, sess.ctrl), err
	}

	outcome := SubmissionOutcome(res.Err)
	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	metrics.SubmissionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	logger.WithFields(logrus.Fields{"outcome": outcome}).Info(res.Status.Message)

	if res.Succeeded() && s.receipts.Enabled() {
		if err := s.receipts.SendScoreReceipt(ctx, res.Snapshot, res.Score); err != nil {
			metrics.ReceiptsFailed.Inc()
			logger.WithError(err).Warn("Failed to send score receipt")
		}
	}

	s.mark(id)
	return stateOf(id, sess.ctrl), nil
}

func (s *formSessionService) Dismiss(_ context.Context, id string) (SessionState, error) {
	sess, err := s.touch(id)
	if err != nil {
		return SessionState{}, err
	}
	sess.ctrl.DismissStatus()
	return stateOf(id, sess.ctrl), nil
}

func (s *formSessionService) Close(_ context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	open := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	metrics.OpenSessions.Set(float64(open))
	return nil
}

// SweepIdle drops sessions untouched for longer than the idle TTL. Sessions
// with a submission in flight are never dropped.
func (s *formSessionService) SweepIdle(_ context.Context) int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.After(cutoff) || sess.ctrl.Submitting() {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	open := len(s.sessions)
	s.mu.Unlock()

	metrics.OpenSessions.Set(float64(open))
	if removed > 0 {
		utils.Logger.Infof("Swept %d idle form sessions, %d still open", removed, open)
	}
	return removed
}

// Ping fails when there is no scorer, or when the scorer can check itself
// and reports a problem.
func (s *formSessionService) Ping(ctx context.Context) error {
	if s.scorer == nil {
		return errors.New("no scoring backend configured")
	}
	if p, ok := s.scorer.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("scoring backend: %w", err)
		}
	}
	return nil
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

func (s *formSessionService) touch(id string) (*formSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *formSessionService) mark(id string) {
	_, _ = s.touch(id)
}

func stateOf(id string, ctrl *creditform.Controller) SessionState {
	st := ctrl.State()
	return SessionState{
		ID:         id,
		Values:     st.Values,
		Status:     st.Status,
		Submitting: st.Submitting,
	}
}

// SubmissionOutcome classifies a submission error for metrics and logs.
func SubmissionOutcome(err error) string {
	var (
		fieldErrs    creditform.FieldErrors
		transportErr *creditform.TransportError
	)
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &fieldErrs):
		return metrics.OutcomeFieldErrors
	case errors.As(err, &transportErr):
		return metrics.OutcomeTransportError
	default:
		return metrics.OutcomeServerError
	}
}
