package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action names understood by the event loop. Tool selection uses
// toolAction(name).
const (
	actionUndo   = "undo"
	actionSave   = "save"
	actionCopy   = "copy"
	actionPaste  = "paste"
	actionClear  = "clear"
	actionQuit   = "quit"
	actionEdit   = "edit"
	actionCancel = "cancel"
)

const toolPrefix = "tool:"

func toolAction(name string) string { return toolPrefix + name }

// binding ties an action to its keys and optional status bar hint.
type binding struct {
	name  string
	label string
	keys  KeyboardShortcuts
}

func ctrl(r rune) KeyShortcut { return KeyShortcut{Rune: r, Modifiers: key.ModControl} }

// bindings lists the actions available in the current mode.
func bindings(toolNames []string, editing bool) []binding {
	if !editing {
		return []binding{
			{name: actionEdit, label: "E:edit", keys: shortcutList{{Rune: 'e'}}},
			{name: actionCopy, label: "^C:copy", keys: shortcutList{ctrl('c')}},
			{name: actionSave, label: "^S:save", keys: shortcutList{ctrl('s')}},
			{name: actionQuit, label: "Q:quit", keys: shortcutList{{Rune: 'q'}}},
		}
	}
	out := make([]binding, 0, len(toolNames)+7)
	for _, name := range toolNames {
		b := binding{name: toolAction(name)}
		if r, ok := toolKeys[name]; ok {
			b.keys = shortcutList{{Rune: r}}
		}
		out = append(out, b)
	}
	return append(out,
		binding{name: actionUndo, label: "^Z:undo", keys: shortcutList{ctrl('z')}},
		binding{name: actionSave, label: "^S:save", keys: shortcutList{ctrl('s')}},
		binding{name: actionCopy, label: "^C:copy", keys: shortcutList{ctrl('c')}},
		binding{name: actionPaste, label: "^V:paste", keys: shortcutList{ctrl('v')}},
		binding{name: actionClear, label: "^N:clear", keys: shortcutList{ctrl('n')}},
		binding{name: actionCancel, keys: shortcutList{{Code: key.CodeEscape}}},
		binding{name: actionQuit, label: "Q:quit", keys: shortcutList{{Rune: 'q'}}},
	)
}

// keymap indexes bindings by shortcut.
func keymap(bs []binding) map[KeyShortcut]string {
	m := make(map[KeyShortcut]string)
	for _, b := range bs {
		if b.keys == nil {
			continue
		}
		for _, sc := range b.keys.KeyboardShortcuts() {
			m[sc] = b.name
		}
	}
	return m
}

// statusShortcuts returns the status bar hints for bs.
func statusShortcuts(bs []binding) []Shortcut {
	var out []Shortcut
	for _, b := range bs {
		if b.label != "" {
			out = append(out, Shortcut{label: b.label, action: b.name})
		}
	}
	return out
}

// matchShortcut resolves a key press, first by rune then by key code.
// Shift is ignored for rune matches so capitals behave like lower case.
// Some drivers report ^A..^Z as control characters.
func matchShortcut(m map[KeyShortcut]string, e key.Event) (string, bool) {
	r := e.Rune
	if e.Modifiers&key.ModControl != 0 && r >= 1 && r <= 26 {
		r = 'a' + r - 1
	}
	if r > 0 {
		mods := e.Modifiers &^ key.ModShift
		if name, ok := m[KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}]; ok {
			return name, true
		}
	}
	if e.Code != key.CodeUnknown {
		if name, ok := m[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]; ok {
			return name, true
		}
	}
	return "", false
}
