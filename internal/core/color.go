package core

// Color is a palette slot for a screen cell. Slots name what is drawn;
// the platform picks the terminal color for each.
type Color uint8

const (
	ColorDefault Color = iota
	ColorShip          // player ship and its debris
	ColorBeam
	ColorHostile // small enemies, long bullets
	ColorHeavy   // middle enemies
	ColorBoss
	ColorTurret // boss batteries and launchers
	ColorShot   // bullets, spread turrets, bullet sparks
	ColorMissile
	ColorFire
	ColorFlash // big explosions
	ColorSmoke
	ColorStar
	ColorText // overlays and HUD
	ColorCount
)

// ansi holds the 256-color code of every slot.
var ansi = [ColorCount]string{
	ColorDefault: "",
	ColorShip:    "14",
	ColorBeam:    "11",
	ColorHostile: "9",
	ColorHeavy:   "5",
	ColorBoss:    "1",
	ColorTurret:  "208",
	ColorShot:    "13",
	ColorMissile: "15",
	ColorFire:    "208",
	ColorFlash:   "11",
	ColorSmoke:   "245",
	ColorStar:    "240",
	ColorText:    "15",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if c >= ColorCount {
		return ""
	}
	return ansi[c]
}

// Bold reports whether c is drawn bold.
func (c Color) Bold() bool {
	return c == ColorBoss || c == ColorFlash || c == ColorText
}
