package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"almanac/internal/reconcile"
)

// DebugLogger logs TUI state, keystrokes, and events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	out     io.WriteCloser
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "almanac-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
// The log rotates so long sessions cannot fill the working directory.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	debugLog = &DebugLogger{
		out: &lumberjack.Logger{
			Filename:   DebugLogPath,
			MaxSize:    10,
			MaxBackups: 2,
		},
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.out != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.out.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.out == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.out, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": int(msg.Type),
	})
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   modeString(from),
		"to":     modeString(to),
		"reason": reason,
	})
}

// LogTimeline logs a timeline load landing.
func LogTimeline(granularity string, entries int) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("TIMELINE", map[string]any{
		"granularity": granularity,
		"entries":     entries,
	})
}

// LogScript logs a reconciliation script before it is applied.
func LogScript(granularity string, script reconcile.Script) {
	if debugLog == nil || !debugLog.enabled {
		return
	}

	steps := make([]map[string]any, 0, len(script.Steps))
	for _, step := range script.Steps {
		steps = append(steps, map[string]any{
			"op":    string(step.Op),
			"key":   step.Key.String(),
			"index": step.Index,
		})
	}
	deferred := make([]string, 0, len(script.Deferred))
	for _, k := range script.Deferred {
		deferred = append(deferred, k.String())
	}

	debugLog.log("SCRIPT", map[string]any{
		"granularity": granularity,
		"steps":       steps,
		"deferred":    deferred,
	})
}

// LogCompletion logs a persisted review marker toggle.
func LogCompletion(key string, complete bool) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("COMPLETION", map[string]any{
		"key":      key,
		"complete": complete,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeEdit:
		return "Edit"
	case ModePrompt:
		return "Prompt"
	case ModeModal:
		return "Modal"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}
