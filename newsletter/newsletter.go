package newsletter

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
	awspkg "sneaker-storefront/pkg/aws"
)

// SubscribersKey holds the subscriber list in the global (unscoped) store.
const SubscribersKey = "newsletter"

var ErrClosed = errors.New("newsletter: service closed")

type Counter interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// Service accepts newsletter signups. A signup is confirmed after a simulated
// delay on a background goroutine; the caller learns the outcome through a
// callback only.
type Service struct {
	store   database.Store
	delay   time.Duration
	metrics Counter
	log     *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewService(store database.Store, delay time.Duration, metrics Counter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, delay: delay, metrics: metrics, log: log}
}

// Subscribe validates email and schedules the signup. onDone, when not nil,
// runs on the background goroutine with the signup's result. There is no
// retry.
func (s *Service) Subscribe(ctx context.Context, email string, onDone func(error)) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := models.Validator().Var(email, "required,email"); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.wg.Add(1)

	ctx = context.WithoutCancel(ctx)
	go func() {
		defer s.wg.Done()
		time.Sleep(s.delay)

		err := s.add(ctx, email)
		if err != nil {
			s.log.Error("Newsletter signup failed", zap.String("email", email), zap.Error(err))
		} else {
			s.log.Info("Newsletter signup", zap.String("email", email))
			s.count(ctx)
		}
		if onDone != nil {
			onDone(err)
		}
	}()
	return nil
}

// Subscribers lists confirmed addresses in signup order.
func (s *Service) Subscribers(ctx context.Context) ([]string, error) {
	var emails []string
	if _, err := database.LoadJSON(ctx, s.store, SubscribersKey, &emails, s.log); err != nil {
		return nil, err
	}
	return emails, nil
}

// Close rejects new signups and waits for the pending ones to finish.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Service) add(ctx context.Context, email string) error {
	return database.UpdateJSON(ctx, s.store, SubscribersKey, s.log, func(emails []string) ([]string, error) {
		if slices.Contains(emails, email) {
			return nil, database.ErrUnchanged
		}
		return append(emails, email), nil
	})
}

func (s *Service) count(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordCount(ctx, awspkg.MetricNewsletterSignups, nil); err != nil {
		s.log.Warn("Failed to record metric", zap.String("metric", awspkg.MetricNewsletterSignups), zap.Error(err))
	}
}
