package mmqa

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelCritical sits above slog.LevelError for parity with the usual level names
const LevelCritical = slog.LevelError + 4

// ParseLogLevel maps a level name (DEBUG, INFO, WARNING, ERROR, CRITICAL,
// case-insensitive) onto a slog level
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("unsupported log level: %s (supported: DEBUG, INFO, WARNING, ERROR, CRITICAL)", name)
	}
}

// NewLogger builds the diagnostic sink used by the CLI: plain text records on w
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelCritical {
					return slog.String(slog.LevelKey, "CRITICAL")
				}
			}
			return a
		},
	}))
}

// discardLogger is the default sink when a caller does not supply one
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// DebugFlags enables extra per-entry diagnostics by name ("walk", "hash")
type DebugFlags map[string]bool

// ParseDebugFlags parses a comma-separated string.
// Supports both simple flags ("walk,hash") and key:value format ("walk:true,hash:false")
func ParseDebugFlags(flagsStr string) DebugFlags {
	flags := make(DebugFlags)
	if flagsStr == "" {
		return flags
	}

	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}

		parts := strings.SplitN(flag, ":", 2)
		flagName := strings.ToLower(parts[0])
		flagValue := true

		if len(parts) > 1 {
			switch strings.ToLower(parts[1]) {
			case "false", "0", "no", "off":
				flagValue = false
			default:
				flagValue = true
			}
		}

		flags[flagName] = flagValue
	}
	return flags
}

// Enabled reports whether the named flag is on
func (f DebugFlags) Enabled(flag string) bool {
	if f == nil {
		return false
	}
	return f[strings.ToLower(flag)]
}
