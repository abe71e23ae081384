// Package addrfmt renders addresses and handle diagnostics as ANSI-256
// colored terminal text.
//
// Every address deterministically picks its own color pair (derived from
// its bytes), so the same cell keeps the same color across a dump and
// related addresses become visually traceable. Null renders on the
// "alarm" pair.
package addrfmt

import "fmt"

// Wrap folds an arbitrary color index into the 256-color palette.
func Wrap(color uint) uint8 {
	if color > 0 {
		return uint8(color % 255)
	}
	return 0
}

// InvertBW picks the readable counterpart for a background color:
// near-black backgrounds get white text, everything else gets black.
func InvertBW(color uint8) uint8 {
	switch {
	case color == 0 || color == 8:
		return 231
	case color >= 16 && color < 21:
		return 231
	case color >= 52 && color < 61:
		return 231
	case color >= 88 && color < 93:
		return 231
	case color >= 232 && color < 239:
		return 231
	default:
		return 16
	}
}

// Couple derives a readable (foreground, background) pair from one index.
func Couple(color uint) (uint8, uint8) {
	fore := Wrap(color)
	back := InvertBW(fore)
	return fore, back
}

// FG opens a bold 256-color foreground run. The run stays open until a
// Reset; nesting FG/BG before one Reset composes both attributes.
func FG(text string, color uint) string {
	return fmt.Sprintf("\x1b[1;38;5;%dm%s", Wrap(color), text)
}

// BG opens a bold 256-color background run.
func BG(text string, color uint) string {
	return fmt.Sprintf("\x1b[1;48;5;%dm%s", Wrap(color), text)
}

// Reset closes every open attribute run after text.
func Reset(text string) string {
	return text + "\x1b[0m"
}

// BGFG opens background and foreground runs around text.
func BGFG(text string, fore, back uint) string {
	return BG(FG(text, uint(Wrap(fore))), uint(Wrap(back)))
}

// ANSI renders text in a self-contained colored run.
func ANSI(text string, fore, back uint) string {
	return Reset(BGFG(text, fore, back))
}

// Clear returns the escape sequence that wipes the terminal.
func Clear() string {
	return "\x1b[2J\x1b[3J\x1b[H"
}

// RGBFromBytes folds a byte string into three color channels.
func RGBFromBytes(data []byte) [3]uint8 {
	var rgb [3]uint8
	for i, b := range data {
		rgb[i%3] = b
	}
	return rgb
}

// FromBytes derives a single palette index from a byte string.
func FromBytes(data []byte) uint8 {
	var color uint8
	for _, c := range RGBFromBytes(data) {
		color ^= c
	}
	return color
}

// FromString derives a palette index from a word.
func FromString(word string) uint8 {
	return FromBytes([]byte(word))
}

// Auto colors a word with the palette index derived from its own bytes,
// so equal words always render in equal colors.
func Auto(word string) string {
	return Reset(FG(word, uint(FromString(word))))
}

// AddrColors picks the (background, foreground) pair for an address.
// Null gets the alarm pair; the sentinel 8 gets a fixed pair; everything
// else derives its pair from the address value.
func AddrColors(addr uintptr) (uint8, uint8) {
	switch addr {
	case 0:
		return 255, 9
	case 8:
		return 16, 137
	default:
		fore, back := Couple(uint(addr))
		return fore, back
	}
}

// Addr renders an address with its nullness suffix:
//
//	0x00000000c0001234:non-null
//	null
//
// colored by the address-derived palette pair.
func Addr(addr uintptr) string {
	bg, fg := AddrColors(addr)
	nullBG, nullFG := Couple(9)
	nonNullBG, nonNullFG := Couple(101)
	return addrRepr(addr, bg, fg, nullBG, nullFG, nonNullBG, nonNullFG)
}

// AddrInv renders an address with the palette pair inverted, used to
// distinguish borrowed views from owning handles in dumps.
func AddrInv(addr uintptr) string {
	fg, bg := AddrColors(addr)
	nullFG, nullBG := Couple(9)
	nonNullFG, nonNullBG := Couple(101)
	return addrRepr(addr, bg, fg, nullBG, nullFG, nonNullBG, nonNullFG)
}

func addrRepr(addr uintptr, bg, fg, nullBG, nullFG, nonNullBG, nonNullFG uint8) string {
	if addr == 0 {
		return ANSI("null", uint(nullFG), uint(nullBG))
	}
	return ANSI(fmt.Sprintf("0x%016x", uint64(addr)), uint(fg), uint(bg)) +
		BGFG(":", 231, 16) +
		ANSI("non-null", uint(nonNullFG), uint(nonNullBG))
}
