package driver

import (
	"context"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scan looks up every device with at most jobs lookups in flight. Reports are
// returned in input order. Per-device failures are recorded in the report and
// never abort the scan; only cancellation of ctx does. Scan does not return
// before every lookup it started has finished.
func (s *Service) Scan(ctx context.Context, devices []models.Device, jobs int) ([]models.DeviceReport, error) {
	if jobs < 1 {
		jobs = 1
	}

	reports := make([]models.DeviceReport, len(devices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, dev := range devices {
		if gctx.Err() != nil {
			break
		}
		i, dev := i, dev // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = s.report(gctx, dev)
			return nil
		})
	}

	// Wait cancels gctx, so cancellation is read from the caller's ctx
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, context.Cause(ctx)
	}

	logrus.Infof("Scanned %d devices", len(devices))
	return reports, nil
}

func (s *Service) report(ctx context.Context, dev models.Device) models.DeviceReport {
	r := models.DeviceReport{Device: dev}

	res, err := s.Lookup(ctx, dev)
	switch {
	case err != nil && models.IsErrorType(err, models.ErrEmptyQuery):
		r.Outcome = models.OutcomeEmptyQuery
		r.Error = err.Error()
	case err != nil:
		logrus.Warnf("Lookup failed: %v", err)
		r.Outcome = models.OutcomeNetworkError
		r.Error = err.Error()
	case res == nil:
		r.Outcome = models.OutcomeNoCandidates
	default:
		r.Outcome = models.OutcomeSelected
		r.Result = res
	}
	return r
}
