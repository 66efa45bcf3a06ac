package gamedata

import "github.com/gdamore/tcell/v2"

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID      string  `json:"id"`      // Unique identifier (e.g., "hero")
	Name    string  `json:"name"`    // Display name (e.g., "Hero")
	Glyph   int     `json:"glyph"`   // Glyph sheet index for the avatar
	Color   string  `json:"color"`   // Hex color code
	HP      int     `json:"hp"`      // Base hit points
	Attack  int     `json:"attack"`  // Base attack power
	Defense int     `json:"defense"` // Base defense value
	Speed   float64 `json:"speed"`   // Tiles per second
}

// TCellColor returns the color as a tcell.Color.
func (c *ClassDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(c.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}
