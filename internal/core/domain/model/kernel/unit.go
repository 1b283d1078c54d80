package kernel

import "strings"

// Unit is the measurement unit of a donated or wasted quantity.
type Unit string

const (
	UnitKilogram   Unit = "KG"
	UnitGram       Unit = "GRAM"
	UnitLitre      Unit = "LITRE"
	UnitMillilitre Unit = "ML"
	UnitUnits      Unit = "UNITS"
	UnitLoaves     Unit = "LOAVES"
	UnitOther      Unit = "OTHER"
)

var knownUnits = map[Unit]struct{}{
	UnitKilogram:   {},
	UnitGram:       {},
	UnitLitre:      {},
	UnitMillilitre: {},
	UnitUnits:      {},
	UnitLoaves:     {},
	UnitOther:      {},
}

// ParseUnit is case-insensitive and maps anything it does not recognise to UnitOther.
func ParseUnit(s string) Unit {
	u := Unit(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownUnits[u]; ok {
		return u
	}
	return UnitOther
}

// String returns the stored unit name.
func (u Unit) String() string {
	return string(u)
}
