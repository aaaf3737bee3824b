// Package reminder emails owners a digest of their upcoming payouts on a cron schedule
package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rgehrsitz/gravityless/internal/config"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/store"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultWindowDays applies when neither the owner nor the server sets a window
const DefaultWindowDays = 7

// SettingsLister returns the owners that opted in to reminders
type SettingsLister interface {
	ListEnabled(ctx context.Context) ([]store.NotificationSettings, error)
}

// SourceLister loads an owner's income sources
type SourceLister interface {
	List(ctx context.Context, ownerID string) ([]domain.IncomeSource, error)
}

// Result summarizes one run
type Result struct {
	Owners  int
	Sent    int
	Skipped int
	Failed  int
}

// Job builds and sends digests
type Job struct {
	settings   SettingsLister
	sources    SourceLister
	notifier   Notifier
	log        logrus.FieldLogger
	windowDays int
}

// orDiscard substitutes a logger that drops everything for a nil one
func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewJob creates a Job. windowDays is used for owners whose settings carry no window.
func NewJob(settings SettingsLister, sources SourceLister, notifier Notifier, windowDays int, log logrus.FieldLogger) *Job {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Job{
		settings:   settings,
		sources:    sources,
		notifier:   notifier,
		log:        orDiscard(log),
		windowDays: windowDays,
	}
}

// RunOnce sends a digest to every enabled owner with at least one event in
// their window. A failure for one owner does not stop the others; all
// failures are returned joined.
func (j *Job) RunOnce(ctx context.Context, now time.Time) (Result, error) {
	var res Result

	enabled, err := j.settings.ListEnabled(ctx)
	if err != nil {
		return res, fmt.Errorf("list notification settings: %w", err)
	}
	res.Owners = len(enabled)

	var errs []error
	for _, ns := range enabled {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		logger := j.log.WithField("owner", ns.OwnerID)
		window := ns.WindowDays
		if window <= 0 {
			window = j.windowDays
		}

		sources, err := j.sources.List(ctx, ns.OwnerID)
		if err != nil {
			res.Failed++
			logger.WithError(err).Error("Failed to load income sources")
			errs = append(errs, fmt.Errorf("owner %s: %w", ns.OwnerID, err))
			continue
		}

		upcoming := events.Extract(sources, now, window)
		if len(upcoming) == 0 {
			res.Skipped++
			logger.Debug("No upcoming events")
			continue
		}

		if err := j.notifier.Send(ctx, Digest(ns.Email, upcoming, window, now)); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("owner %s: %w", ns.OwnerID, err))
			continue
		}
		res.Sent++
	}

	return res, errors.Join(errs...)
}

// Scheduler runs a Job on a cron schedule
type Scheduler struct {
	cron    *cron.Cron
	job     *Job
	timeout time.Duration
	now     func() time.Time
	log     logrus.FieldLogger
}

// NewScheduler registers job under cfg.Schedule. An empty schedule returns a nil
// Scheduler, which is safe to Start and Stop.
func NewScheduler(job *Job, cfg config.ReminderConfig, log logrus.FieldLogger) (*Scheduler, error) {
	if cfg.Schedule == "" {
		return nil, nil
	}

	s := &Scheduler{
		cron:    cron.New(),
		job:     job,
		timeout: cfg.Timeout,
		now:     time.Now,
		log:     orDiscard(log),
	}
	if s.timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	if _, err := s.cron.AddFunc(cfg.Schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", cfg.Schedule, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.job.RunOnce(ctx, s.now())
	entry := s.log.WithFields(logrus.Fields{
		"owners":  res.Owners,
		"sent":    res.Sent,
		"skipped": res.Skipped,
		"failed":  res.Failed,
	})
	if err != nil {
		entry.WithError(err).Error("Reminder run finished with errors")
		return
	}
	entry.Info("Reminder run finished")
}

// Start begins running the job in the background
func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.cron.Start()
	s.log.Info("Reminder scheduler started")
}

// Stop prevents new runs and waits for a running one to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil {
		return
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
