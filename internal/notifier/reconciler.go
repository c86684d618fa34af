package notifier

import (
	"context"
	"fmt"

	"hhnotifier/internal/logx"
)

// listLimit is the gateway query size. Only the newest one or two messages
// are semantically inspected, but anything beyond them makes the channel
// uninitialized, so the fetch has to see more than two.
const listLimit = 100

// Reconciler executes one observe-classify-act cycle per trigger. It holds
// no channel state between runs; callers must serialize Run invocations
// (the scheduler's single worker does).
type Reconciler struct {
	gw     Gateway
	render Renderer
	botID  string
	log    logx.Logger
}

func NewReconciler(gw Gateway, render Renderer, botID string, log logx.Logger) *Reconciler {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Reconciler{gw: gw, render: render, botID: botID, log: log}
}

// Run fetches the channel, classifies it, and applies the action for the
// given trigger. Any gateway error aborts the run; the next fire reassesses
// from whatever state the channel was left in.
func (r *Reconciler) Run(ctx context.Context, trigger Trigger) error {
	msgs, err := r.gw.ListRecent(ctx, listLimit)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	state := Classify(msgs, r.botID)
	r.log.Debug("reconciling",
		logx.String("trigger", trigger.String()),
		logx.String("state", state.String()),
		logx.Int("observed", len(msgs)))

	switch trigger {
	case TriggerRefresh:
		return r.refresh(ctx, state, msgs)
	case TriggerNotify:
		return r.notify(ctx, state, msgs)
	case TriggerEnd:
		return r.end(ctx, state, msgs)
	default:
		return fmt.Errorf("unknown trigger %d", trigger)
	}
}

func (r *Reconciler) refresh(ctx context.Context, state State, msgs []Message) error {
	switch state {
	case StateUninitialized:
		return r.reinit(ctx, msgs)
	case StateNonNotified:
		return r.gw.Edit(ctx, msgs[0].ID, r.render.Info())
	case StateNotified:
		// msgs[1] is the info message.
		return r.gw.Edit(ctx, msgs[1].ID, r.render.Info())
	}
	return nil
}

func (r *Reconciler) notify(ctx context.Context, state State, msgs []Message) error {
	switch state {
	case StateUninitialized:
		// Rebuild as info first, then notify, so the post-notify layout is
		// [notify, info] newest-first, same as the notified invariant.
		if err := r.reinit(ctx, msgs); err != nil {
			return err
		}
		return r.sendNotify(ctx)
	case StateNonNotified:
		return r.sendNotify(ctx)
	case StateNotified:
		// Already announced.
		return nil
	}
	return nil
}

func (r *Reconciler) end(ctx context.Context, state State, msgs []Message) error {
	switch state {
	case StateUninitialized:
		return r.reinit(ctx, msgs)
	case StateNonNotified:
		// Nothing to take down.
		return nil
	case StateNotified:
		// msgs[0] is the notify message.
		return r.gw.Delete(ctx, msgs[0].ID)
	}
	return nil
}

// reinit wipes every observed message and posts a fresh info message.
func (r *Reconciler) reinit(ctx context.Context, msgs []Message) error {
	for _, m := range msgs {
		if err := r.gw.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("delete %s: %w", m.ID, err)
		}
	}
	if len(msgs) > 0 {
		r.log.Info("channel reinitialized", logx.Int("deleted", len(msgs)))
	}
	if _, err := r.gw.Send(ctx, r.render.Info(), MentionNone); err != nil {
		return fmt.Errorf("send info: %w", err)
	}
	return nil
}

func (r *Reconciler) sendNotify(ctx context.Context) error {
	if _, err := r.gw.Send(ctx, r.render.Notify(), MentionRole); err != nil {
		return fmt.Errorf("send notify: %w", err)
	}
	r.log.Info("happy hour announced")
	return nil
}
