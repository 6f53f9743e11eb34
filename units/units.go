// Package units converts measurements between units of temperature, distance,
// and weight.
package units

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/calc"
)

// unit is a unit of measurement within a category.
type unit struct {
	// names are the lowercase spellings of the unit.
	names []string
	// toBase and fromBase convert to and from the category's base unit.
	toBase, fromBase func(float64) float64
	// suffix follows a converted value.
	suffix string
	// prec is the number of decimal places of a converted value.
	prec int
}

// category is a set of units which convert to each other.
type category struct {
	name string
	// abbrs lists the units for error messages.
	abbrs []string
	units []unit
	// degrees indicates that the source unit is written as degrees.
	degrees bool
}

func ident(x float64) float64 { return x }

func scale(f float64) (to, from func(float64) float64) {
	to = func(x float64) float64 { return x * f }
	from = func(x float64) float64 { return x / f }
	return to, from
}

func mk(suffix string, prec int, to, from func(float64) float64, names ...string) unit {
	return unit{names: names, toBase: to, fromBase: from, suffix: suffix, prec: prec}
}

var (
	kmTo, kmFrom = scale(1000)
	miTo, miFrom = scale(1609.34)
	ftTo, ftFrom = scale(0.3048)
	lbTo, lbFrom = scale(0.453592)
	ozTo, ozFrom = scale(0.0283495)
)

var categories = []category{
	{
		name:    "temperature",
		abbrs:   []string{"C", "F", "K"},
		degrees: true,
		units: []unit{
			mk("°C", 1, ident, ident, "c", "celsius"),
			mk("°F", 1,
				func(f float64) float64 { return (f - 32) * 5 / 9 },
				func(c float64) float64 { return c*9/5 + 32 },
				"f", "fahrenheit"),
			mk("K", 1,
				func(k float64) float64 { return k - 273.15 },
				func(c float64) float64 { return c + 273.15 },
				"k", "kelvin"),
		},
	},
	{
		name:  "distance",
		abbrs: []string{"m", "km", "mi", "ft"},
		units: []unit{
			mk(" meters", 2, ident, ident, "m", "meter", "meters"),
			mk(" km", 2, kmTo, kmFrom, "km", "kilometer", "kilometers"),
			mk(" miles", 2, miTo, miFrom, "mi", "mile", "miles"),
			mk(" feet", 1, ftTo, ftFrom, "ft", "feet", "foot"),
		},
	},
	{
		name:  "weight",
		abbrs: []string{"kg", "lb", "oz"},
		units: []unit{
			mk(" kg", 2, ident, ident, "kg", "kilogram", "kilograms"),
			mk(" lb", 2, lbTo, lbFrom, "lb", "pound", "pounds"),
			mk(" oz", 2, ozTo, ozFrom, "oz", "ounce", "ounces"),
		},
	},
}

// find looks up a unit by name in c.
func (c *category) find(name string) *unit {
	for i := range c.units {
		for _, n := range c.units[i].names {
			if n == name {
				return &c.units[i]
			}
		}
	}
	return nil
}

// Convert converts value from one unit to another and describes the
// conversion, e.g. "100°C = 212.0°F" or "5 km = 3.11 miles". Unit names are
// case-insensitive and may be abbreviated or spelled out. Units of different
// categories don't convert to each other.
func Convert(value float64, from, to string) (string, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	for i := range categories {
		c := &categories[i]
		src := c.find(from)
		if src == nil {
			continue
		}
		dst := c.find(to)
		if dst == nil {
			return "", &UnitError{Category: c.name, Unit: to}
		}
		r := dst.fromBase(src.toBase(value))
		v := calc.Float(value).String()
		var b strings.Builder
		if c.degrees {
			b.WriteString(v + "°" + strings.ToUpper(from))
		} else {
			b.WriteString(v + " " + from)
		}
		b.WriteString(" = ")
		b.WriteString(strconv.FormatFloat(r, 'f', dst.prec, 64))
		b.WriteString(dst.suffix)
		return b.String(), nil
	}
	return "", &UnitError{Unit: from}
}

// UnitError is an error returned for a unit that Convert does not know.
type UnitError struct {
	// Category is the category of the source unit, or empty if the source
	// unit is the unknown one.
	Category string
	// Unit is the unknown unit, normalized to lowercase.
	Unit string
}

func (err *UnitError) Error() string {
	if err.Category == "" {
		var b strings.Builder
		b.WriteString("Unknown unit type: " + err.Unit + ". Supported categories:")
		for _, c := range categories {
			b.WriteString("\n- " + strings.ToUpper(c.name[:1]) + c.name[1:] + ": " + strings.Join(c.abbrs, ", "))
		}
		return b.String()
	}
	for _, c := range categories {
		if c.name == err.Category {
			return "Unknown " + c.name + " unit: " + err.Unit + ". Use " + list(c.abbrs) + "."
		}
	}
	return "Unknown " + err.Category + " unit: " + err.Unit + "."
}

// list joins words as an English list with "or".
func list(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + ", or " + words[len(words)-1]
	}
}

// Categories returns the names of the categories of units with the
// abbreviations of their units.
func Categories() map[string][]string {
	m := make(map[string][]string, len(categories))
	for _, c := range categories {
		m[c.name] = append([]string(nil), c.abbrs...)
	}
	return m
}
