// Package notify turns editor events into desktop notifications.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixelart/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a picture is written as PNG.
	EventSave Event = "save"
	// EventCopy fires when a picture or colour reaches the clipboard.
	EventCopy Event = "copy"
	// EventExport fires when a picture is exported at a scale or as PDF.
	EventExport Event = "export"
)

// Events lists every event in a stable order.
var Events = []Event{EventSave, EventCopy, EventExport}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification text.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.DefaultAppName,
		Events: map[Event]EventPreference{
			EventSave:   {Template: "Saved %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
			EventExport: {Template: "Exported %s"},
		},
	}
}

// LoadPreferences applies PIXELART_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PIXELART_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, ev := range Events {
		key := "PIXELART_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			p := prefs.Events[ev]
			p.Template = v
			prefs.Events[ev] = p
		}
	}
	return prefs
}

// send delivers a message; tests replace it.
var send = platform.Notify

// Notifier sends notifications for the events it has enabled. A nil
// Notifier is valid and silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event would produce a notification.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save reports a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	n.file(EventSave, path)
}

// Export reports an exported file.
func (n *Notifier) Export(path string) {
	n.file(EventExport, path)
}

// Copy reports a clipboard write; detail names what was copied.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "picture"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) file(event Event, path string) {
	if !n.Enabled(event) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil && strings.EqualFold(filepath.Ext(abs), ".png") {
			opts.IconPath = abs
		}
	}
	n.dispatch(event, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.Enabled(event) {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Events[event].Template)
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts.AppName = n.prefs.Title
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
