package viewer

import (
	"log/slog"
	"sync"
	"time"
)

const (
	devToolsPollInterval = 500 * time.Millisecond
	devToolsGapThreshold = 160
)

// KeyChord identifies a keyboard shortcut by key name and modifiers.
type KeyChord struct {
	Key   string
	Ctrl  bool
	Shift bool
	Meta  bool
}

// blockedChords are the shortcuts associated with dev-tools, view-source,
// save, and print.
var blockedChords = map[KeyChord]struct{}{
	{Key: "F12"}:                          {},
	{Key: "I", Ctrl: true, Shift: true}:   {},
	{Key: "J", Ctrl: true, Shift: true}:   {},
	{Key: "C", Ctrl: true, Shift: true}:   {},
	{Key: "U", Ctrl: true}:                {},
	{Key: "S", Ctrl: true}:                {},
	{Key: "P", Ctrl: true}:                {},
	{Key: "S", Meta: true}:                {},
	{Key: "P", Meta: true}:                {},
	{Key: "I", Meta: true, Shift: true}:   {},
	{Key: "J", Meta: true, Shift: true}:   {},
	{Key: "C", Meta: true, Shift: true}:   {},
}

// suppressedEvents are the page events the viewer swallows while hardened.
var suppressedEvents = map[string]struct{}{
	"contextmenu": {},
	"selectstart": {},
	"dragstart":   {},
	"copy":        {},
}

// WindowMetrics reports the hosting window's outer and inner dimensions.
type WindowMetrics interface {
	OuterSize() (width, height int)
	InnerSize() (width, height int)
}

// Hardening owns the countermeasures active while a book is on screen.
// Arming starts the dev-tools dimension poller; Close tears everything down
// and is safe to call more than once. The dimension heuristic is a
// deterrent with known false positives and is never an authorization input.
type Hardening struct {
	metrics   WindowMetrics
	navigator Navigator
	logger    *slog.Logger
	interval  time.Duration
	threshold int

	mu      sync.Mutex
	blurred bool
	closed  bool

	stop chan struct{}
	done chan struct{}
}

// ArmHardening activates the countermeasure layer and starts the poller.
func ArmHardening(metrics WindowMetrics, navigator Navigator, logger *slog.Logger) *Hardening {
	h := newHardening(metrics, navigator, logger)
	h.start()
	return h
}

func newHardening(metrics WindowMetrics, navigator Navigator, logger *slog.Logger) *Hardening {
	return &Hardening{
		metrics:   metrics,
		navigator: navigator,
		logger:    logger,
		interval:  devToolsPollInterval,
		threshold: devToolsGapThreshold,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (h *Hardening) start() {
	go h.poll()
}

// BlockKey reports whether the chord must have its default action prevented.
func (h *Hardening) BlockKey(chord KeyChord) bool {
	_, blocked := blockedChords[chord]
	return blocked
}

// SuppressEvent reports whether the page event must be swallowed.
func (h *Hardening) SuppressEvent(event string) bool {
	_, suppressed := suppressedEvents[event]
	return suppressed
}

// SetFocused records a window focus change. Losing focus blurs the viewer
// region until focus returns.
func (h *Hardening) SetFocused(focused bool) {
	h.mu.Lock()
	h.blurred = !focused
	h.mu.Unlock()
}

// Blurred reports whether the viewer region is visually blurred.
func (h *Hardening) Blurred() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.blurred
}

// Close stops the poller and releases the countermeasures. Idempotent.
func (h *Hardening) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// poll compares outer and inner window dimensions on each tick. A gap above
// the threshold in either axis is treated as dev-tools being open and forces
// navigation away from the viewer.
func (h *Hardening) poll() {
	defer close(h.done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			outerW, outerH := h.metrics.OuterSize()
			innerW, innerH := h.metrics.InnerSize()
			if outerW-innerW > h.threshold || outerH-innerH > h.threshold {
				if h.logger != nil {
					h.logger.Warn("window dimension gap exceeded threshold, leaving viewer",
						slog.Int("width_gap", outerW-innerW),
						slog.Int("height_gap", outerH-innerH),
					)
				}
				h.navigator.LeaveViewer()
				return
			}
		}
	}
}
