package ingredient

import (
	"encoding/json"
	"fmt"
)

// UnitKind identifies the family a Unit belongs to.
type UnitKind int

const (
	KindMass UnitKind = iota + 1
	KindVolume
	KindSpoon
	KindOther
)

func (k UnitKind) String() string {
	switch k {
	case KindMass:
		return "mass"
	case KindVolume:
		return "volume"
	case KindSpoon:
		return "spoon"
	case KindOther:
		return "other"
	}
	return "unknown"
}

// UnitError reports a token that is not a synonym of any unit in a family.
type UnitError struct {
	Token string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("parsing unit from %q", e.Token)
}

type MassUnit int

const (
	Milligrams MassUnit = iota
	Grams
	Kilograms
	Pounds
	Ounces
)

// ParseMassUnit matches token exactly against the mass synonym table.
func ParseMassUnit(token string) (MassUnit, error) {
	switch token {
	case "mg", "milligram", "milligrams":
		return Milligrams, nil
	case "g", "gram", "grams":
		return Grams, nil
	case "kg", "kilogram", "kilograms":
		return Kilograms, nil
	case "lb", "pound", "pounds":
		return Pounds, nil
	case "oz", "ounce", "ounces":
		return Ounces, nil
	}
	return 0, &UnitError{Token: token}
}

func (m MassUnit) String() string {
	switch m {
	case Milligrams:
		return "mg"
	case Grams:
		return "g"
	case Kilograms:
		return "kg"
	case Pounds:
		return "lb"
	case Ounces:
		return "oz"
	}
	return fmt.Sprintf("MassUnit(%d)", int(m))
}

// Factor converts a quantity in m to grams.
func (m MassUnit) Factor() float64 {
	switch m {
	case Milligrams:
		return 0.001
	case Grams:
		return 1.0
	case Kilograms:
		return 1000.0
	case Pounds:
		return 453.59237
	case Ounces:
		return 28.349523125
	}
	return 1.0
}

type VolumeUnit int

const (
	Millilitres VolumeUnit = iota
	Litres
	Teaspoons
	Tablespoons
	Cups
	Pints
	Quarts
	Gallons
)

// ParseVolumeUnit matches token exactly against the volume synonym table.
func ParseVolumeUnit(token string) (VolumeUnit, error) {
	switch token {
	case "ml", "millilitre", "millilitres":
		return Millilitres, nil
	case "l", "litre", "litres":
		return Litres, nil
	case "tsp", "teaspoon", "teaspoons":
		return Teaspoons, nil
	case "tbsp", "tablespoon", "tablespoons":
		return Tablespoons, nil
	case "cup", "cups":
		return Cups, nil
	case "pint", "pints":
		return Pints, nil
	case "quart", "quarts":
		return Quarts, nil
	case "gallon", "gallons":
		return Gallons, nil
	}
	return 0, &UnitError{Token: token}
}

func (v VolumeUnit) String() string {
	switch v {
	case Millilitres:
		return "ml"
	case Litres:
		return "l"
	case Teaspoons:
		return "tsp"
	case Tablespoons:
		return "tbsp"
	case Cups:
		return "cup"
	case Pints:
		return "pint"
	case Quarts:
		return "quart"
	case Gallons:
		return "gallon"
	}
	return fmt.Sprintf("VolumeUnit(%d)", int(v))
}

// Factor converts a quantity in v to litres.
func (v VolumeUnit) Factor() float64 {
	switch v {
	case Millilitres:
		return 0.001
	case Litres:
		return 1.0
	case Teaspoons:
		return 0.005
	case Tablespoons:
		return 0.015
	case Cups:
		return 0.284
	case Pints:
		return 0.568
	case Quarts:
		return 0.946353
	case Gallons:
		return 3.785412
	}
	return 1.0
}

// SpoonUnit is a spoon measure that is not classified as a true volume.
type SpoonUnit int

const (
	SpoonTeaspoons SpoonUnit = iota
	SpoonTablespoons
)

func ParseSpoonUnit(token string) (SpoonUnit, error) {
	switch token {
	case "tsp", "teaspoon", "teaspoons":
		return SpoonTeaspoons, nil
	case "tbsp", "tablespoon", "tablespoons":
		return SpoonTablespoons, nil
	}
	return 0, &UnitError{Token: token}
}

func (s SpoonUnit) String() string {
	switch s {
	case SpoonTeaspoons:
		return "tsp"
	case SpoonTablespoons:
		return "tbsp"
	}
	return fmt.Sprintf("SpoonUnit(%d)", int(s))
}

// Factor converts a quantity in s to litres.
func (s SpoonUnit) Factor() float64 {
	switch s {
	case SpoonTeaspoons:
		return 0.005
	case SpoonTablespoons:
		return 0.015
	}
	return 1.0
}

// Unit is a tagged union over the unit families. Only the field matching
// Kind is meaningful. Units are comparable with ==.
type Unit struct {
	Kind   UnitKind
	Mass   MassUnit
	Volume VolumeUnit
	Spoon  SpoonUnit
	Label  string
}

func MassOf(m MassUnit) Unit { return Unit{Kind: KindMass, Mass: m} }
func VolumeOf(v VolumeUnit) Unit { return Unit{Kind: KindVolume, Volume: v} }
func SpoonOf(s SpoonUnit) Unit { return Unit{Kind: KindSpoon, Spoon: s} }
func OtherOf(label string) Unit { return Unit{Kind: KindOther, Label: label} }

// ParseUnit tries the mass, volume and spoon tables in that order. A token
// none of them know becomes an Other unit; the error is always nil so unit
// classification never blocks ingredient parsing.
func ParseUnit(token string) (Unit, error) {
	if m, err := ParseMassUnit(token); err == nil {
		return MassOf(m), nil
	}
	if v, err := ParseVolumeUnit(token); err == nil {
		return VolumeOf(v), nil
	}
	if s, err := ParseSpoonUnit(token); err == nil {
		return SpoonOf(s), nil
	}
	return OtherOf(token), nil
}

// Factor is the multiplier from u to the base unit of its family.
func (u Unit) Factor() float64 {
	switch u.Kind {
	case KindMass:
		return u.Mass.Factor()
	case KindVolume:
		return u.Volume.Factor()
	case KindSpoon:
		return u.Spoon.Factor()
	}
	return 1.0
}

// Canonical returns the base unit of u's family: grams for mass, litres for
// volume and spoon measures, u itself otherwise.
func (u Unit) Canonical() Unit {
	switch u.Kind {
	case KindMass:
		return MassOf(Grams)
	case KindVolume, KindSpoon:
		return VolumeOf(Litres)
	}
	return u
}

// SmallerPrefix steps one rung down the metric ladder (kg→g→mg, l→ml).
func (u Unit) SmallerPrefix() (Unit, bool) {
	switch {
	case u.Kind == KindMass && u.Mass == Grams:
		return MassOf(Milligrams), true
	case u.Kind == KindMass && u.Mass == Kilograms:
		return MassOf(Grams), true
	case u.Kind == KindVolume && u.Volume == Litres:
		return VolumeOf(Millilitres), true
	}
	return Unit{}, false
}

// LargerPrefix steps one rung up the metric ladder (mg→g→kg, ml→l).
func (u Unit) LargerPrefix() (Unit, bool) {
	switch {
	case u.Kind == KindMass && u.Mass == Milligrams:
		return MassOf(Grams), true
	case u.Kind == KindMass && u.Mass == Grams:
		return MassOf(Kilograms), true
	case u.Kind == KindVolume && u.Volume == Millilitres:
		return VolumeOf(Litres), true
	}
	return Unit{}, false
}

// String renders the display abbreviation, or the label for Other units.
func (u Unit) String() string {
	switch u.Kind {
	case KindMass:
		return u.Mass.String()
	case KindVolume:
		return u.Volume.String()
	case KindSpoon:
		return u.Spoon.String()
	}
	return u.Label
}

type unitJSON struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(unitJSON{Kind: u.Kind.String(), Name: u.String()})
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var raw unitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := UnitFromParts(raw.Kind, raw.Name)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// UnitFromParts rebuilds a Unit from its family name and display name, the
// form used by MarshalJSON and by the recipe store.
func UnitFromParts(kind, name string) (Unit, error) {
	switch kind {
	case "mass":
		m, err := ParseMassUnit(name)
		if err != nil {
			return Unit{}, err
		}
		return MassOf(m), nil
	case "volume":
		v, err := ParseVolumeUnit(name)
		if err != nil {
			return Unit{}, err
		}
		return VolumeOf(v), nil
	case "spoon":
		s, err := ParseSpoonUnit(name)
		if err != nil {
			return Unit{}, err
		}
		return SpoonOf(s), nil
	case "other":
		return OtherOf(name), nil
	}
	return Unit{}, fmt.Errorf("unknown unit kind %q", kind)
}
