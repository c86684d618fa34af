package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"hhnotifier/internal/logx"
)

type Config struct {
	QueueSize   int // pending fires; default 16
	HistorySize int // retained run records; default 32
}

// HistoryItem records one job execution.
type HistoryItem struct {
	Name     string
	Started  time.Time
	Duration time.Duration
	Error    string
}

type task struct {
	name string
	run  func(ctx context.Context) error
}

type scheduleDef struct {
	name    string
	spec    string
	job     func(ctx context.Context) error
	entryID cron.EntryID
}

type Service struct {
	mu sync.Mutex

	log logx.Logger
	cfg Config

	parser cron.Parser
	c      *cron.Cron
	defs   []scheduleDef

	queue  chan task
	stopCh chan struct{}
	wg     sync.WaitGroup

	hmu     sync.Mutex
	history []HistoryItem
}

func New(cfg Config, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 32
	}
	return &Service{
		cfg:    cfg,
		log:    log,
		parser: cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

// Start brings up the cron driver and the worker. Idempotent.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != nil {
		return
	}
	s.stopCh = make(chan struct{})
	s.queue = make(chan task, s.cfg.QueueSize)

	s.c = cron.New(cron.WithParser(s.parser), cron.WithLocation(time.UTC))
	for i := range s.defs {
		// Specs were validated at registration; re-adding cannot fail.
		_ = s.addCronLocked(&s.defs[i])
	}

	s.wg.Add(1)
	go s.worker(ctx, s.stopCh, s.queue)

	s.c.Start()
	s.log.Info("scheduler started", logx.Int("schedules", len(s.defs)))
}

// Stop halts the cron driver and waits for the worker. A reconciliation in
// flight runs to completion; queued-but-unstarted fires are discarded.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.stopCh == nil {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.stopCh = nil
	c := s.c
	s.c = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

// AddCron registers a named job. The spec must be a 6-field cron expression;
// an unparseable spec is returned as an error (fatal at startup).
func (s *Service) AddCron(name, spec string, job func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		return errors.New("name required")
	}
	if _, err := s.parser.Parse(spec); err != nil {
		return fmt.Errorf("schedule %s: invalid spec %q: %w", name, spec, err)
	}

	s.defs = append(s.defs, scheduleDef{name: name, spec: spec, job: job})
	d := &s.defs[len(s.defs)-1]
	if s.c != nil {
		if err := s.addCronLocked(d); err != nil {
			return fmt.Errorf("schedule %s: %w", name, err)
		}
	}
	s.log.Debug("schedule registered", logx.String("name", name), logx.String("spec", spec))
	return nil
}

// History returns a copy of the retained run records, oldest first.
func (s *Service) History() []HistoryItem {
	s.hmu.Lock()
	defer s.hmu.Unlock()
	return append([]HistoryItem(nil), s.history...)
}

func (s *Service) addCronLocked(d *scheduleDef) error {
	eid, err := s.c.AddFunc(d.spec, func() {
		s.enqueue(task{name: d.name, run: d.job})
	})
	if err == nil {
		d.entryID = eid
	}
	return err
}

func (s *Service) enqueue(t task) {
	s.mu.Lock()
	q := s.queue
	s.mu.Unlock()
	if q == nil {
		s.log.Debug("scheduler not running; dropping fire", logx.String("task", t.name))
		return
	}
	select {
	case q <- t:
	default:
		// A full queue means reconciliations are not keeping up with their
		// own schedule; dropping is safe because every run re-reads the
		// channel from scratch.
		s.log.Warn("scheduler queue full; dropping fire", logx.String("task", t.name))
	}
}

func (s *Service) worker(ctx context.Context, stopCh <-chan struct{}, queue <-chan task) {
	defer s.wg.Done()
	for {
		// Fast-exit check so a closed stopCh wins over queued work.
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		default:
		}

		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case t := <-queue:
			// A run that already started finishes even if shutdown begins
			// mid-flight; stopping between tasks is the only cancellation.
			s.execOne(context.WithoutCancel(ctx), t)
		}
	}
}

func (s *Service) execOne(ctx context.Context, t task) {
	start := time.Now()
	err := t.run(ctx)
	dur := time.Since(start)

	item := HistoryItem{Name: t.name, Started: start, Duration: dur}
	if err != nil {
		item.Error = err.Error()
		s.log.Warn("task failed", logx.String("task", t.name), logx.Err(err), logx.Duration("dur", dur))
	} else {
		s.log.Debug("task completed", logx.String("task", t.name), logx.Duration("dur", dur))
	}

	s.hmu.Lock()
	s.history = append(s.history, item)
	if len(s.history) > s.cfg.HistorySize {
		s.history = s.history[len(s.history)-s.cfg.HistorySize:]
	}
	s.hmu.Unlock()
}
