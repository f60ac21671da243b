package driver

import (
	"context"

	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/oracle"
	"github.com/sirupsen/logrus"
)

// Select picks one candidate for dev and classifies its driver status.
//
// Only candidates at the highest level are probed; the last of them that the
// oracle recognises wins. While nothing has won, candidate 0 is probed again
// after each step so that a recognised first candidate still reports its
// status, so candidate 0 may be probed several times. Select returns false
// when candidates is empty.
func Select(ctx context.Context, o oracle.Oracle, dev models.Device, candidates []models.DriverCandidate) (*models.SelectionResult, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	probe := func(c models.DriverCandidate) models.InstallStatus {
		status, err := o.Probe(ctx, c.Packages, c.DebVersion)
		if err != nil {
			logrus.Warnf("Package query for %s failed: %v", c.Packages, err)
			status = models.NotFound
		}
		probeCounter.WithLabelValues(status.String()).Inc()
		return status
	}

	maxLevel := 0
	for _, c := range candidates {
		if c.Level > maxLevel {
			maxLevel = c.Level
		}
	}

	index := 0
	installStatus := models.NotFound
	for i, c := range candidates {
		if c.Level == maxLevel {
			if s := probe(c); s != models.NotFound {
				installStatus = s
				index = i
			}
		}
		if index == 0 {
			if s := probe(candidates[0]); s != models.NotFound {
				installStatus = s
			}
		}
	}

	winner := candidates[index]
	res := &models.SelectionResult{
		Packages:      winner.Packages,
		DebVersion:    winner.DebVersion,
		Size:          winner.Size,
		Bytes:         winner.Bytes,
		Status:        Classify(dev, installStatus),
		InstallStatus: installStatus,
		Index:         index,
		Candidate:     winner,
	}

	logrus.Debugf("Selected %s %s for %s (%s)", res.Packages, res.DebVersion, dev.Label(), res.Status)
	return res, true
}

// Classify maps an install status to the driver status shown for dev.
// Printers without a matching package are still reported as updatable.
func Classify(dev models.Device, s models.InstallStatus) models.DriverStatus {
	switch s {
	case models.VersionMatch:
		return models.StatusUpToDate
	case models.VersionMismatch:
		return models.StatusCanUpdate
	default:
		if dev.DriverName == "" && dev.Class != models.ClassPrinter {
			return models.StatusNotInstalled
		}
		return models.StatusCanUpdate
	}
}
