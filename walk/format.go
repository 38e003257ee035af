package walk

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format converts a value to its textual form as used by `print` and string
// concatenation.  Strings and chars are written as-is; structs and enum
// definitions use a JSON-like object form in which nested strings are quoted.
func Format(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, false)
	return sb.String()
}

// EscapeJSON escapes a string so it can be embedded in a quoted JSON string.
func EscapeJSON(s string) string {
	return jsonEscaper.Replace(s)
}

var jsonEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// writeValue writes the textual form of a value.  `quoted` is set for values
// nested inside structured (object) output.
func writeValue(sb *strings.Builder, v Value, quoted bool) {
	switch tv := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case String:
		if quoted {
			sb.WriteString(`"` + EscapeJSON(string(tv)) + `"`)
		} else {
			sb.WriteString(string(tv))
		}
	case Char:
		if quoted {
			sb.WriteString(`"` + EscapeJSON(string(rune(tv))) + `"`)
		} else {
			sb.WriteRune(rune(tv))
		}
	case Number:
		sb.WriteString(formatNumber(float64(tv)))
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(tv)))
	case *List:
		sb.WriteRune('[')
		for i, elem := range tv.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeValue(sb, elem, quoted)
		}
		sb.WriteRune(']')
	case *StructInstance:
		sb.WriteRune('{')
		for i, field := range tv.Fields() {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(`"` + EscapeJSON(field) + `": `)
			writeValue(sb, tv.values[field], true)
		}
		sb.WriteRune('}')
	case *EnumDef:
		sb.WriteString(`{"type": "Enum", "name": "`)
		sb.WriteString(EscapeJSON(tv.Name))
		sb.WriteString(`", "members": {`)
		for i, name := range tv.names {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(`"` + EscapeJSON(name) + `": `)
			sb.WriteString(strconv.Itoa(tv.values[name]))
		}
		sb.WriteString("}}")
	case EnumMember:
		sb.WriteString(strconv.Itoa(tv.Value))
	case *Handle:
		sb.WriteString("<file " + tv.Path + ">")
	}
}

// formatNumber formats a number the shortest way that round-trips.  Integral
// values print without a fractional part.  Decimal exponents of 15 and above
// or below -4 switch to scientific notation with a signed, two digit minimum
// exponent: 1E+15, 1.5E-07.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}

	sci := strconv.FormatFloat(n, 'e', -1, 64)
	endx := strings.IndexByte(sci, 'e')
	exp, _ := strconv.Atoi(sci[endx+1:])
	if exp >= -4 && exp < 15 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	sign := "+"
	if exp < 0 {
		sign, exp = "-", -exp
	}

	return fmt.Sprintf("%sE%s%02d", sci[:endx], sign, exp)
}
