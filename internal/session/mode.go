package session

// Mode is the current tool mode. Modes are mutually exclusive and gate which
// pointer behaviors are active.
type Mode int

const (
	ModeNone Mode = iota
	ModeRescale
	ModePaint
	ModeMaterial
	ModeSetting
	ModePlace
	ModeDestroy
)

var modeNames = map[Mode]string{
	ModeNone:     "none",
	ModeRescale:  "rescale",
	ModePaint:    "paint",
	ModeMaterial: "material",
	ModeSetting:  "setting",
	ModePlace:    "place",
	ModeDestroy:  "destroy",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "none"
}

// ParseMode maps a mode name to its Mode. Unknown names (including "") map to
// ModeNone, which matches the tool panel passing null to deselect a tool.
func ParseMode(s string) Mode {
	for m, name := range modeNames {
		if name == s {
			return m
		}
	}
	return ModeNone
}

// GridMode controls how the ground grid is drawn.
type GridMode int

const (
	GridNormal GridMode = iota
	GridTranslucent
	GridHidden
)

var gridModeNames = map[GridMode]string{
	GridNormal:      "normal",
	GridTranslucent: "translucent",
	GridHidden:      "hidden",
}

func (g GridMode) String() string {
	if s, ok := gridModeNames[g]; ok {
		return s
	}
	return "normal"
}

// ParseGridMode maps a grid mode name to its GridMode; unknown names map to
// GridNormal.
func ParseGridMode(s string) GridMode {
	for g, name := range gridModeNames {
		if name == s {
			return g
		}
	}
	return GridNormal
}
