// Package ascii spawns glyph sprites and text readouts from the code page 437 glyph set.
package ascii

// GlyphCount is the number of glyphs in the set, laid out as a 16x16 sheet.
const GlyphCount = 256

// cp437 maps glyph sheet indices to the runes a terminal can display.
// Glyphs are numbered in code page 437 order.
var cp437 = func() [GlyphCount]rune {
	var table [GlyphCount]rune

	low := []rune(" ☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼")
	copy(table[:32], low)
	for i := 32; i < 127; i++ {
		table[i] = rune(i)
	}
	table[127] = '⌂'

	high := []rune("ÇüéâäàåçêëèïîìÄÅ" +
		"ÉæÆôöòûùÿÖÜ¢£¥₧ƒ" +
		"áíóúñÑªº¿⌐¬½¼¡«»" +
		"░▒▓│┤╡╢╖╕╣║╗╝╜╛┐" +
		"└┴┬├─┼╞╟╚╔╩╦╠═╬╧" +
		"╨╤╥╙╘╒╓╫╪┘┌█▄▌▐▀" +
		"αßΓπΣσµτΦΘΩδ∞φε∩" +
		"≡±≥≤⌠⌡÷≈°∙·√ⁿ²■ ")
	copy(table[128:], high)
	return table
}()

// Rune returns the display rune for a glyph index. Out-of-range indices render as '?'.
func Rune(index int) rune {
	if index < 0 || index >= GlyphCount {
		return '?'
	}
	return cp437[index]
}

// Index returns the glyph index for a rune that appears on the sheet.
// Runes in 0..255 map to themselves, matching how map and text characters are looked up.
func Index(r rune) (int, bool) {
	if r < 0 || int(r) >= GlyphCount {
		return 0, false
	}
	return int(r), true
}
