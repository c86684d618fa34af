// Package core wires the application together: logging, the Discord
// adapter, the scheduler, and the three reconciliation jobs.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hhnotifier/internal/config"
	"hhnotifier/internal/crontime"
	"hhnotifier/internal/logx"
	"hhnotifier/internal/notifier"
	"hhnotifier/internal/scheduler"
	"hhnotifier/internal/transport/discord"
	"hhnotifier/internal/window"
)

// ErrScheduleRegister marks a cron registration failure; main maps it to
// its dedicated exit code.
var ErrScheduleRegister = errors.New("schedule registration failed")

type App struct {
	cfg *config.Config

	log  logx.Logger
	logs *logx.Service

	adapter *discord.Adapter
	sched   *scheduler.Service
}

func New(cfg *config.Config) (*App, error) {
	logs, log := logx.New(logx.Config{
		Level:   cfg.LogLevel,
		Console: true,
		File: logx.FileConfig{
			Enabled: cfg.LogFile != "",
			Path:    cfg.LogFile,
		},
		Discord: logx.DiscordConfig{
			Enabled:    cfg.LogChannelID != 0,
			MinLevel:   "warn",
			RatePerSec: 1,
		},
	}, nil)

	ad, err := discord.New(discord.Config{
		Token:        cfg.BotToken,
		ChannelID:    cfg.ChannelID,
		RoleID:       cfg.RoleID,
		LogChannelID: cfg.LogChannelID,
	}, log.With(logx.String("comp", "discord")))
	if err != nil {
		_ = logs.Close()
		return nil, err
	}
	// The sink only exists once the session does.
	logs.SetSink(ad)

	sched := scheduler.New(scheduler.Config{}, log.With(logx.String("comp", "scheduler")))

	return &App{
		cfg:     cfg,
		log:     log.With(logx.String("comp", "app")),
		logs:    logs,
		adapter: ad,
		sched:   sched,
	}, nil
}

// Run blocks until ctx is canceled or startup fails.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.logs.Close() }()

	a.log.Info("starting",
		logx.Uint64("channel_id", a.cfg.ChannelID),
		logx.Int("start_hour", a.cfg.StartHour),
		logx.Int("end_hour", a.cfg.EndHour),
		logx.Int("shift_min", a.cfg.ShiftMin))

	if err := a.adapter.Start(ctx); err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	defer func() { _ = a.adapter.Stop() }()

	// One-shot rendezvous: the bot user id only exists after the gateway
	// handshake, and the reconciler captures it by value.
	var botID string
	select {
	case botID = <-a.adapter.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	w := window.Window{StartHour: a.cfg.StartHour, EndHour: a.cfg.EndHour}
	render := notifier.Renderer{RoleID: a.cfg.RoleID, Window: w, Now: window.UTC}
	rec := notifier.NewReconciler(a.adapter.Channel(), render, botID,
		a.log.With(logx.String("comp", "reconciler")))

	a.sched.Start(ctx)
	defer a.sched.Stop()

	if err := a.registerJobs(rec); err != nil {
		return err
	}

	if a.cfg.HTTPAddr != "" {
		srv := a.startHealthz()
		defer func() {
			shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			_ = srv.Shutdown(shCtx)
			cancel()
		}()
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return nil
}

// registerJobs wires the three triggers. One constructor, three rows.
func (a *App) registerJobs(rec *notifier.Reconciler) error {
	ct := crontime.Schedule{
		StartHour: a.cfg.StartHour,
		EndHour:   a.cfg.EndHour,
		ShiftMin:  a.cfg.ShiftMin,
	}

	jobs := []struct {
		name    string
		spec    string
		trigger notifier.Trigger
	}{
		{"refresh", ct.Refresh(), notifier.TriggerRefresh},
		{"notify", ct.Notify(), notifier.TriggerNotify},
		{"end", ct.End(), notifier.TriggerEnd},
	}

	for _, j := range jobs {
		trigger := j.trigger
		err := a.sched.AddCron(j.name, j.spec, func(ctx context.Context) error {
			return rec.Run(ctx, trigger)
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrScheduleRegister, err)
		}
		a.log.Info("trigger scheduled", logx.String("name", j.name), logx.String("spec", j.spec))
	}
	return nil
}

func (a *App) startHealthz() *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		hist := a.sched.History()
		resp := struct {
			Status  string                 `json:"status"`
			LastRun *scheduler.HistoryItem `json:"last_run,omitempty"`
			Runs    int                    `json:"runs"`
		}{Status: "ok", Runs: len(hist)}
		if len(hist) > 0 {
			resp.LastRun = &hist[len(hist)-1]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	srv := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("healthz server error", logx.Err(err))
		}
	}()
	return srv
}
