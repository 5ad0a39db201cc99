package utils

import (
	"regexp"
	"strings"
)

const (
	SideNorth = "north"
	SideSouth = "south"
)

// Unit codes are <building letter A-H><floor digit><unit letter>, e.g. B2G.
var (
	unitCodePattern = regexp.MustCompile(`(?i)\b([A-H][0-9][A-Z])\b`)
	sidePattern     = regexp.MustCompile(`(?i)\b(north|south)\b`)
)

// UnitAndSide is what could be pulled out of a free-text reply. Empty
// fields mean "not found".
type UnitAndSide struct {
	Unit string
	Side string
}

func (u UnitAndSide) HasUnit() bool  { return u.Unit != "" }
func (u UnitAndSide) HasSide() bool  { return u.Side != "" }
func (u UnitAndSide) Complete() bool { return u.HasUnit() && u.HasSide() }

// ExtractUnitAndSide finds the first unit code and the first side word.
// The unit comes back upper-cased and the side lower-cased.
func ExtractUnitAndSide(text string) UnitAndSide {
	var out UnitAndSide
	if m := unitCodePattern.FindStringSubmatch(text); m != nil {
		out.Unit = strings.ToUpper(m[1])
	}
	if m := sidePattern.FindStringSubmatch(text); m != nil {
		out.Side = strings.ToLower(m[1])
	}
	return out
}

// DisplaySide turns "south" into "South".
func DisplaySide(side string) string {
	if side == "" {
		return ""
	}
	return strings.ToUpper(side[:1]) + strings.ToLower(side[1:])
}
