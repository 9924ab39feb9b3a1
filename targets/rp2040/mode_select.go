//go:build rp2040

package main

import "vogal/core"

// ModeConfig holds the compile-time options of the firmware
type ModeConfig struct {
	// Glyphs selects how the intro letters are drawn:
	// core.GlyphStatic writes each letter once and holds it,
	// core.GlyphReveal lights it cell by cell like the first firmware did
	Glyphs core.GlyphMode
}

// GetMode returns the current mode configuration
func GetMode() ModeConfig {
	return ModeConfig{
		Glyphs: core.GlyphStatic,
	}
}
