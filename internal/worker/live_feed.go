// Package worker hosts the background jobs that run alongside the API.
package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/aquawatch/aquawatch/internal/domain/dashboard"
	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/metrics"
	"github.com/aquawatch/aquawatch/internal/ws"
)

// LiveFeed periodically pushes the latest reading and dashboard overview
// to connected WebSocket clients
type LiveFeed struct {
	readingSvc   reading.Service
	dashboardSvc dashboard.Service
	hub          *ws.Hub
	schedule     string
	cron         *cron.Cron
	logger       *logger.Logger
}

// snapshot is the live feed payload
type snapshot struct {
	Latest   *reading.Reading    `json:"latest"`
	Overview *dashboard.Overview `json:"overview"`
}

// NewLiveFeed creates the live feed job. The schedule uses cron syntax
// with a seconds field, e.g. "*/5 * * * * *".
func NewLiveFeed(readingSvc reading.Service, dashboardSvc dashboard.Service, hub *ws.Hub, schedule string, log *logger.Logger) *LiveFeed {
	return &LiveFeed{
		readingSvc:   readingSvc,
		dashboardSvc: dashboardSvc,
		hub:          hub,
		schedule:     schedule,
		cron:         cron.New(cron.WithSeconds()),
		logger:       log,
	}
}

// Start schedules the push job. The job itself never returns an error;
// failures are logged and the next tick retries.
func (f *LiveFeed) Start(ctx context.Context) error {
	if _, err := f.cron.AddFunc(f.schedule, func() { f.push(ctx) }); err != nil {
		return fmt.Errorf("invalid live feed schedule %q: %w", f.schedule, err)
	}

	f.cron.Start()
	f.logger.WithField("schedule", f.schedule).Info("Live feed started")

	go func() {
		<-ctx.Done()
		f.Stop()
	}()

	return nil
}

// Stop halts the schedule and waits for a running push to finish
func (f *LiveFeed) Stop() {
	stopCtx := f.cron.Stop()
	<-stopCtx.Done()
	f.logger.Info("Live feed stopped")
}

func (f *LiveFeed) push(ctx context.Context) {
	// Nobody listening, skip the store round-trips
	if f.hub.ClientCount() == 0 {
		return
	}

	snap := snapshot{}

	latest, err := f.readingSvc.GetLatest(ctx)
	if err == nil {
		snap.Latest = latest
	}

	overview, err := f.dashboardSvc.Overview(ctx)
	if err != nil {
		f.logger.ErrorWithErr(err, "Live feed overview failed")
		return
	}
	snap.Overview = overview

	f.hub.Broadcast(ws.TypeSnapshot, snap)
	metrics.RecordLivePush()
}
