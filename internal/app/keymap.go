package app

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pyselect/internal/dispatcher/handlers/blockselect"
)

// Key identifies a key press: a special key, or KeyRune with a rune.
type Key struct {
	Code tcell.Key
	Rune rune
}

// RuneKey returns the key for a printable character.
func RuneKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// SpecialKey returns the key for a non-printable key such as tcell.KeyEsc.
func SpecialKey(k tcell.Key) Key {
	return Key{Code: k}
}

// KeyMap maps keys to command names.
type KeyMap struct {
	bindings map[Key]string
}

// NewKeyMap creates an empty key map.
func NewKeyMap() *KeyMap {
	return &KeyMap{bindings: make(map[Key]string)}
}

// DefaultKeyMap returns the viewer's standard bindings.
func DefaultKeyMap() *KeyMap {
	km := NewKeyMap()

	km.Bind(RuneKey('s'), blockselect.ActionSelect)
	km.Bind(SpecialKey(tcell.KeyCtrlL), blockselect.ActionSelect)
	km.Bind(RuneKey('u'), blockselect.ActionShrink)
	km.Bind(RuneKey('U'), blockselect.ActionRegrow)
	km.Bind(SpecialKey(tcell.KeyEsc), blockselect.ActionCollapse)

	km.Bind(RuneKey('j'), ActionCursorDown)
	km.Bind(SpecialKey(tcell.KeyDown), ActionCursorDown)
	km.Bind(RuneKey('k'), ActionCursorUp)
	km.Bind(SpecialKey(tcell.KeyUp), ActionCursorUp)
	km.Bind(SpecialKey(tcell.KeyPgDn), ActionPageDown)
	km.Bind(SpecialKey(tcell.KeyCtrlF), ActionPageDown)
	km.Bind(SpecialKey(tcell.KeyPgUp), ActionPageUp)
	km.Bind(SpecialKey(tcell.KeyCtrlB), ActionPageUp)
	km.Bind(RuneKey('g'), ActionTop)
	km.Bind(RuneKey('G'), ActionBottom)
	km.Bind(RuneKey('z'), ActionCenter)

	km.Bind(RuneKey('q'), ActionQuit)
	km.Bind(SpecialKey(tcell.KeyCtrlC), ActionQuit)

	return km
}

// Bind maps key to a command, replacing any previous binding.
func (km *KeyMap) Bind(key Key, action string) {
	km.bindings[key] = action
}

// Unbind removes the binding for key.
func (km *KeyMap) Unbind(key Key) {
	delete(km.bindings, key)
}

// Lookup returns the command bound to a key event.
func (km *KeyMap) Lookup(ev *tcell.EventKey) (string, bool) {
	action, ok := km.bindings[keyOf(ev)]
	return action, ok
}

// keyOf normalizes an event. Terminals report control combinations either
// as control keys or as a rune with ModCtrl; both map to the control key.
func keyOf(ev *tcell.EventKey) Key {
	if ev.Key() != tcell.KeyRune {
		return SpecialKey(ev.Key())
	}
	r := ev.Rune()
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		if l := unicode.ToLower(r); l >= 'a' && l <= 'z' {
			return SpecialKey(tcell.KeyCtrlA + tcell.Key(l-'a'))
		}
	}
	return RuneKey(r)
}
