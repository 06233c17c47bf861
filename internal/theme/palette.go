package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Theme 1: desaturated blue
// ---------------------------------------------------------------------------

const (
	blueMain      lipgloss.Color = "#3a4663"
	blueToggle    lipgloss.Color = "#242d44"
	blueScreen    lipgloss.Color = "#181f33"
	blueKeyAccent lipgloss.Color = "#647198"
	blueKeyShadow lipgloss.Color = "#414e73"
	blueEquals    lipgloss.Color = "#d03f2f"
	blueEqualsSh  lipgloss.Color = "#93261a"
	blueKeyFace   lipgloss.Color = "#eae3dc"
	blueKeyText   lipgloss.Color = "#444b5a"
	blueText      lipgloss.Color = "#ffffff"
)

// ---------------------------------------------------------------------------
// Theme 2: light gray
// ---------------------------------------------------------------------------

const (
	grayMain      lipgloss.Color = "#e6e6e6"
	grayToggle    lipgloss.Color = "#d2cdcd"
	grayScreen    lipgloss.Color = "#eeeeee"
	grayKeyAccent lipgloss.Color = "#377f86"
	grayKeyShadow lipgloss.Color = "#1b6066"
	grayEquals    lipgloss.Color = "#c85402"
	grayEqualsSh  lipgloss.Color = "#873901"
	grayKeyFace   lipgloss.Color = "#e5e4e1"
	grayKeyText   lipgloss.Color = "#36362c"
	grayText      lipgloss.Color = "#36362c"
)

// ---------------------------------------------------------------------------
// Theme 3: dark violet
// ---------------------------------------------------------------------------

const (
	violetMain      lipgloss.Color = "#17062a"
	violetToggle    lipgloss.Color = "#1e0936"
	violetScreen    lipgloss.Color = "#1e0936"
	violetKeyAccent lipgloss.Color = "#56077c"
	violetKeyShadow lipgloss.Color = "#be15f4"
	violetEquals    lipgloss.Color = "#00decf"
	violetEqualsSh  lipgloss.Color = "#6cf9f1"
	violetKeyFace   lipgloss.Color = "#331c4d"
	violetKeyText   lipgloss.Color = "#ffe53d"
	violetText      lipgloss.Color = "#ffe53d"
)

// Palette is the set of colors a position renders with.
type Palette struct {
	Background lipgloss.Color
	Toggle     lipgloss.Color
	Screen     lipgloss.Color
	Text       lipgloss.Color

	KeyFace lipgloss.Color
	KeyText lipgloss.Color

	// DEL and RESET
	AccentFace lipgloss.Color
	AccentEdge lipgloss.Color
	AccentText lipgloss.Color

	EqualsFace lipgloss.Color
	EqualsEdge lipgloss.Color
	EqualsText lipgloss.Color
}

var palettes = map[Position]Palette{
	First: {
		Background: blueMain, Toggle: blueToggle, Screen: blueScreen, Text: blueText,
		KeyFace: blueKeyFace, KeyText: blueKeyText,
		AccentFace: blueKeyAccent, AccentEdge: blueKeyShadow, AccentText: blueText,
		EqualsFace: blueEquals, EqualsEdge: blueEqualsSh, EqualsText: blueText,
	},
	Second: {
		Background: grayMain, Toggle: grayToggle, Screen: grayScreen, Text: grayText,
		KeyFace: grayKeyFace, KeyText: grayKeyText,
		AccentFace: grayKeyAccent, AccentEdge: grayKeyShadow, AccentText: "#ffffff",
		EqualsFace: grayEquals, EqualsEdge: grayEqualsSh, EqualsText: "#ffffff",
	},
	Third: {
		Background: violetMain, Toggle: violetToggle, Screen: violetScreen, Text: violetText,
		KeyFace: violetKeyFace, KeyText: violetKeyText,
		AccentFace: violetKeyAccent, AccentEdge: violetKeyShadow, AccentText: "#ffffff",
		EqualsFace: violetEquals, EqualsEdge: violetEqualsSh, EqualsText: "#1a2327",
	},
}

// PaletteFor returns the palette for p, falling back to Default.
func PaletteFor(p Position) Palette {
	if pal, ok := palettes[p]; ok {
		return pal
	}
	return palettes[Default]
}

// AllPaletteColors returns every color used by the three palettes.
func AllPaletteColors() []lipgloss.Color {
	var out []lipgloss.Color
	for _, p := range All() {
		pal := PaletteFor(p)
		out = append(out,
			pal.Background, pal.Toggle, pal.Screen, pal.Text,
			pal.KeyFace, pal.KeyText,
			pal.AccentFace, pal.AccentEdge, pal.AccentText,
			pal.EqualsFace, pal.EqualsEdge, pal.EqualsText,
		)
	}
	return out
}
