package tool

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/zephyrtronium/calc/units"
)

// UnitConverterName is the name of the unit conversion tool.
const UnitConverterName = "convert_units"

type converter struct{}

// UnitConverter returns a tool that converts a measurement between units. Its
// argument is an object with a number "value" and strings "from_unit" and
// "to_unit". Unknown units produce a message describing the supported units.
func UnitConverter() Tool {
	return converter{}
}

func (converter) Name() string { return UnitConverterName }

func (converter) Description() string {
	return "Convert a value between units of temperature (C, F, K), distance (m, km, mi, ft), or weight (kg, lb, oz)."
}

func (converter) Parameters() map[string]any {
	return object([]string{"value", "from_unit", "to_unit"}, map[string]any{
		"value":     prop("number", "The value to convert."),
		"from_unit": prop("string", "The unit of the value."),
		"to_unit":   prop("string", "The unit to convert to."),
	})
}

func (converter) Call(ctx context.Context, args []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !gjson.ValidBytes(args) {
		return "", NewToolError(UnitConverterName, "arguments are not valid JSON", ValidationError)
	}
	r := gjson.GetManyBytes(args, "value", "from_unit", "to_unit")
	if r[0].Type != gjson.Number {
		return "", NewToolError(UnitConverterName, `argument "value" must be a number`, ValidationError)
	}
	for i, name := range []string{"from_unit", "to_unit"} {
		if r[i+1].Type != gjson.String {
			return "", NewToolError(UnitConverterName, `argument "`+name+`" must be a string`, ValidationError)
		}
	}
	s, err := units.Convert(r[0].Num, r[1].Str, r[2].Str)
	if err != nil {
		var ue *units.UnitError
		if errors.As(err, &ue) {
			return ue.Error(), nil
		}
		return "", &ToolError{Tool: UnitConverterName, Message: err.Error(), Code: ExecutionError, Details: err}
	}
	return s, nil
}
