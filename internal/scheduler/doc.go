// Package scheduler runs the three reconciliation triggers on 6-field cron
// schedules (seconds enabled), evaluated in UTC.
//
// Cron fires do not run jobs directly: they enqueue into a FIFO drained by a
// single worker goroutine, so no two reconciliations ever overlap. Each
// reconciliation is an atomic read-modify-write against the channel, and the
// single worker is what makes that hold. The second offsets baked into the
// trigger expressions keep the three schedules off each other's ticks, so
// queueing is ordering insurance rather than a throughput concern.
package scheduler
