// Package config loads the notifier configuration from environment
// variables. Every startup failure carries a distinct exit code so a
// supervisor can tell from the code alone which check failed.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Exit codes, one per variable and failure kind (missing vs invalid).
// Invalid covers both parse failures and out-of-range values.
const (
	ExitTokenMissing     = 10
	ExitChannelIDMissing = 11
	ExitChannelIDInvalid = 12
	ExitRoleIDMissing    = 13
	ExitRoleIDInvalid    = 14
	ExitStartHourMissing = 15
	ExitStartHourInvalid = 16
	ExitEndHourMissing   = 17
	ExitEndHourInvalid   = 18
	ExitShiftMissing     = 19
	ExitShiftInvalid     = 20
	ExitWindowEmpty      = 21

	// ExitScheduler is used by main when cron job registration fails.
	ExitScheduler = 30
)

// Config is immutable after Load.
type Config struct {
	BotToken  string
	ChannelID uint64
	RoleID    uint64
	StartHour int
	EndHour   int
	ShiftMin  int

	// Optional ambient settings.
	LogLevel     string
	LogFile      string
	LogChannelID uint64 // 0 disables the Discord log sink
	HTTPAddr     string // "" disables the healthz listener
}

// Error is a startup configuration failure bound to an exit code.
type Error struct {
	Var  string
	Code int
	msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Var, e.msg) }

// ExitCode maps a Load error to its process exit code.
func ExitCode(err error) int {
	if ce, ok := err.(*Error); ok {
		return ce.Code
	}
	return 1
}

// Load reads and validates all environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel: envOr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
		HTTPAddr: os.Getenv("HTTP_ADDR"),
	}

	var err error
	if cfg.BotToken, err = requireString("DISCORD_BOT_TOKEN", ExitTokenMissing); err != nil {
		return nil, err
	}
	if cfg.ChannelID, err = requireUint64("DISCORD_CHANNEL_ID", ExitChannelIDMissing, ExitChannelIDInvalid); err != nil {
		return nil, err
	}
	if cfg.RoleID, err = requireUint64("DISCORD_ROLE_ID", ExitRoleIDMissing, ExitRoleIDInvalid); err != nil {
		return nil, err
	}
	if cfg.StartHour, err = requireIntRange("HH_START_HOUR_UTC", 0, 24, ExitStartHourMissing, ExitStartHourInvalid); err != nil {
		return nil, err
	}
	if cfg.EndHour, err = requireIntRange("HH_FINISH_HOUR_UTC", 0, 24, ExitEndHourMissing, ExitEndHourInvalid); err != nil {
		return nil, err
	}
	if cfg.ShiftMin, err = requireIntRange("NOTIFICATION_TIME_SHIFT_MINUTES", 0, 59, ExitShiftMissing, ExitShiftInvalid); err != nil {
		return nil, err
	}

	if cfg.StartHour == cfg.EndHour {
		return nil, &Error{
			Var:  "HH_START_HOUR_UTC",
			Code: ExitWindowEmpty,
			msg:  fmt.Sprintf("window is empty: start and end are both %d", cfg.StartHour),
		}
	}

	// Optional Discord log channel; invalid values are ignored rather than
	// fatal since the sink is purely for operator convenience.
	if raw := os.Getenv("LOG_CHANNEL_ID"); raw != "" {
		if id, perr := strconv.ParseUint(raw, 10, 64); perr == nil {
			cfg.LogChannelID = id
		}
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireString(key string, missingCode int) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", &Error{Var: key, Code: missingCode, msg: "required but not set"}
	}
	return v, nil
}

func requireUint64(key string, missingCode, invalidCode int) (uint64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, &Error{Var: key, Code: missingCode, msg: "required but not set"}
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &Error{Var: key, Code: invalidCode, msg: fmt.Sprintf("not an unsigned integer: %q", raw)}
	}
	return v, nil
}

func requireIntRange(key string, lo, hi, missingCode, invalidCode int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, &Error{Var: key, Code: missingCode, msg: "required but not set"}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Error{Var: key, Code: invalidCode, msg: fmt.Sprintf("not an integer: %q", raw)}
	}
	if v < lo || v > hi {
		return 0, &Error{Var: key, Code: invalidCode, msg: fmt.Sprintf("%d out of range [%d, %d]", v, lo, hi)}
	}
	return v, nil
}
