// Package uiutil provides utility functions for UI message handling.
package uiutil

import (
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// DefaultInfoTTL is how long a status message stays visible.
const DefaultInfoTTL = 5 * time.Second

func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func ReportError(err error) tea.Cmd {
	slog.Error("Error reported", "error", err)
	return CmdHandler(InfoMsg{
		Type: InfoTypeError,
		Msg:  ansi.Strip(err.Error()),
	})
}

type InfoType int

const (
	InfoTypeInfo InfoType = iota
	InfoTypeSuccess
	InfoTypeWarn
	InfoTypeError
)

func ReportInfo(info string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeInfo,
		Msg:  info,
	})
}

func ReportSuccess(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeSuccess,
		Msg:  msg,
	})
}

func ReportWarn(warn string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeWarn,
		Msg:  warn,
	})
}

type (
	InfoMsg struct {
		Type InfoType
		Msg  string
		TTL  time.Duration
	}
	ClearStatusMsg struct{}
)

// ClearAfter returns a command that clears the status bar after the message
// TTL, or [DefaultInfoTTL] when none is set.
func ClearAfter(msg InfoMsg) tea.Cmd {
	ttl := msg.TTL
	if ttl <= 0 {
		ttl = DefaultInfoTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Debouncer coalesces bursts of events. Each call to [Debouncer.Trigger]
// schedules a tick; only the tick of the latest trigger is reported as
// current by [Debouncer.Fire].
type Debouncer struct {
	id    string
	delay time.Duration
	seq   int
}

// DebounceMsg is delivered when a debounce delay has elapsed.
type DebounceMsg struct {
	ID  string
	Seq int
}

// NewDebouncer returns a debouncer identified by id.
func NewDebouncer(id string, delay time.Duration) *Debouncer {
	return &Debouncer{id: id, delay: delay}
}

// Trigger schedules a new tick, superseding any pending one.
func (d *Debouncer) Trigger() tea.Cmd {
	d.seq++
	msg := DebounceMsg{ID: d.id, Seq: d.seq}
	if d.delay <= 0 {
		return CmdHandler(msg)
	}
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Fire reports whether msg is the tick of the latest trigger of d.
func (d *Debouncer) Fire(msg tea.Msg) bool {
	m, ok := msg.(DebounceMsg)
	return ok && m.ID == d.id && m.Seq == d.seq
}

// ErrorMessage flattens err into a single status line.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return ansi.Strip(errs[0].Error())
		}
	}
	return ansi.Strip(err.Error())
}
