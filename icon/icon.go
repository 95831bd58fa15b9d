// Package icon provides a multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, or plain ASCII depending on user preference.
package icon

import (
	"github.com/episodic-ext/episodic/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Question
)

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji string
	nerd  string
	plain string
}

// icons is the global symbol registry.
var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "[ok]"},
	Fail:     {emoji: "❌", nerd: "", plain: "[fail]"},
	Progress: {emoji: "⏳", nerd: "", plain: "..."},
	Question: {emoji: "❓", nerd: "", plain: "[?]"},
}

// Get retrieves the visual representation for the receiver based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}
