package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/oracle"
	"github.com/ralt/drivermgr/internal/query"
	"github.com/ralt/drivermgr/internal/repo"
	"github.com/sirupsen/logrus"
)

// ErrEmptyQuery is wrapped by lookups for devices no query can be built for
var ErrEmptyQuery = errors.New("no lookup query for device")

// Service looks up drivers for devices. It holds no mutable state, so one
// Service may serve concurrent lookups.
type Service struct {
	builder   *query.Builder
	transport repo.Transport
	oracle    oracle.Oracle
	timeout   time.Duration
}

// NewService wires the lookup pipeline. A non-positive timeout uses
// repo.DefaultTimeout.
func NewService(builder *query.Builder, transport repo.Transport, o oracle.Oracle, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = repo.DefaultTimeout
	}
	return &Service{
		builder:   builder,
		transport: transport,
		oracle:    o,
		timeout:   timeout,
	}
}

// Lookup builds the query for dev, fetches candidates and selects one.
//
// An unbuildable query returns an ErrEmptyQuery DriverError and a failed
// request returns an ErrNetwork DriverError. A response that does not decode
// or carries no candidates is not an error: Lookup returns (nil, nil) and the
// caller keeps whatever it knew about dev before.
func (s *Service) Lookup(ctx context.Context, dev models.Device) (*models.SelectionResult, error) {
	start := time.Now()
	res, outcome, err := s.lookup(ctx, dev)
	lookupCounter.WithLabelValues(string(outcome)).Inc()
	lookupDuration.WithLabelValues(string(outcome)).Observe(time.Since(start).Seconds())
	return res, err
}

func (s *Service) lookup(ctx context.Context, dev models.Device) (*models.SelectionResult, models.Outcome, error) {
	url := s.builder.Build(dev)
	if url == "" {
		return nil, models.OutcomeEmptyQuery, &models.DriverError{
			Type:   models.ErrEmptyQuery,
			Device: dev.Label(),
			Err:    ErrEmptyQuery,
		}
	}

	logrus.Debugf("Looking up %s: %s", dev.Label(), url)

	body, err := s.transport.Get(ctx, url, s.timeout)
	if err != nil {
		return nil, models.OutcomeNetworkError, &models.DriverError{
			Type:   models.ErrNetwork,
			Device: dev.Label(),
			Err:    fmt.Errorf("lookup request failed: %w", err),
		}
	}

	candidates, err := repo.Decode(body)
	if err != nil {
		logrus.Debugf("No candidates for %s: %v", dev.Label(), err)
		return nil, models.OutcomeNoCandidates, nil
	}

	res, ok := Select(ctx, s.oracle, dev, candidates)
	if !ok {
		return nil, models.OutcomeNoCandidates, nil
	}

	logrus.Infof("%s: %s %s (%s)", dev.Label(), res.Packages, res.DebVersion, res.Status)
	return res, models.OutcomeSelected, nil
}
