package fvalue

import (
	"encoding/json"
	"strconv"
)

// Render turns a value back into text. A null value declared as a date renders
// as "null", any other null as an empty string.
func Render(declared Type, value Value, outputPattern string) string {
	if value.IsNull() {
		if declared == TypeDate {
			return NullDate
		}
		return ""
	}
	if outputPattern == "" {
		outputPattern = DefaultDateOutput
	}
	switch value.Type {
	case TypeInteger:
		return strconv.FormatInt(value.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(value.Float, 'f', -1, 64)
	case TypeDate:
		return value.Time.Format(FormatLayout(outputPattern))
	case TypeBoolean:
		return strconv.FormatBool(value.Bool)
	default:
		return value.Text
	}
}

func (r Value) String() string {
	return Render(r.Type, r, DefaultDateOutput)
}

func (r Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Native())
}
