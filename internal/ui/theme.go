package ui

import (
	"slices"
	"strings"
)

// Theme bundles palette, item symbols and panel borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending string

	BoxUnchecked, BoxChecked string
	SymDone, SymUnchecked    string
	Grip                     string // drag handle shown when reordering is on

	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string

	NoColor bool
}

var (
	rounded = Theme{CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯", H: "─", V: "│"}
	square  = Theme{CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘", H: "─", V: "│"}
	ascii   = Theme{CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+", H: "-", V: "|"}
)

func withBorder(t, b Theme) Theme {
	t.CornerTL, t.CornerTR, t.CornerBL, t.CornerBR = b.CornerTL, b.CornerTR, b.CornerBL, b.CornerBR
	t.H, t.V = b.H, b.V
	return t
}

var themes = map[string]Theme{
	"classic": withBorder(Theme{
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymUnchecked: "•", Grip: "≡",
	}, square),
	"neon": withBorder(Theme{
		Name:  "neon",
		Title: "\033[95m", // bright magenta
		Muted: fgGray, Accent: "\033[96m",
		Success: fgGreen, Error: fgRed, Pending: "\033[93m",
		BoxUnchecked: "◻", BoxChecked: "◼",
		SymDone: "✔", SymUnchecked: "•", Grip: "⠿",
	}, rounded),
	"mono": withBorder(Theme{
		Name:         "mono",
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymUnchecked: "-", Grip: "=",
		NoColor: true,
	}, ascii),
}

var current = themes["classic"]

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// SetTheme switches the palette; unknown names fall back to classic.
// Mono also turns color off.
func SetTheme(name string) {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		t = themes["classic"]
	}
	current = t
	if t.NoColor {
		disableColor = true
	}
}

// Current is what renderers read from.
func Current() Theme { return current }
