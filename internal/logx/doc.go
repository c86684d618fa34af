// Package logx is the bot's structured logging layer, built on zerolog.
//
// It provides a small value-type Logger with composable Fields, and a
// Service that fans log lines out to up to three sinks:
//   - Console (human-friendly pretty output)
//   - File (JSON lines)
//   - Discord channel (rate-limited operator visibility)
//
// The Discord sink must point at a channel OTHER than the notifier's target
// channel: the reconciler treats every bot-authored message in the target
// channel as state, and log lines there would corrupt classification.
package logx
