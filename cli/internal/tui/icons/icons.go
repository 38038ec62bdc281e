// ABOUTME: Glyphs for CLI output with Nerd Font and plain Unicode variants
// ABOUTME: Picks the variant once per process from HOTEL_RMS_NERD_FONTS or the terminal

package icons

import (
	"os"
	"slices"
	"strings"
	"sync"
)

// nerdFontTerminals usually ship with a patched font
var nerdFontTerminals = []string{"iterm.app", "alacritty", "wezterm", "kitty", "ghostty"}

var nerdFonts = sync.OnceValue(func() bool {
	return detect(os.Getenv)
})

func detect(getenv func(string) string) bool {
	if v := getenv("HOTEL_RMS_NERD_FONTS"); v != "" {
		return v == "1" || strings.EqualFold(v, "true")
	}
	term := strings.ToLower(getenv("TERM") + " " + getenv("TERM_PROGRAM"))
	return slices.ContainsFunc(nerdFontTerminals, func(t string) bool {
		return strings.Contains(term, t)
	})
}

// Icon is a glyph with a Nerd Font codepoint and a Unicode fallback
type Icon struct {
	NerdFont string
	Fallback string
}

func (i Icon) String() string {
	if nerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	Hotel = Icon{"󰋜", "⌂"}
	Bed   = Icon{"󰋣", "▭"}
	Pool  = Icon{"󰆼", "◎"}

	CheckOK = Icon{"", "✓"}
	Info    = Icon{"", "ℹ"}

	TrendUp = Icon{"󰄬", "↗"}
	Wizard  = Icon{"󰂓", "★"}
)
