package indicator

import (
	"strconv"
	"strings"
)

// suffix multipliers for numeric literals; % is percent points, not a fraction
var suffixMultipliers = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'%': 1,
}

// ParseValue converts a literal token into a Value.
// Accepts [-][0-9.]+[MBK%]? or a double-quoted string.
func ParseValue(token string) (Value, error) {
	text := strings.TrimSpace(token)
	if text == "" {
		return Value{}, &ValueParseError{Text: token, Reason: "empty literal"}
	}

	if text[0] == '"' {
		if len(text) < 2 || text[len(text)-1] != '"' {
			return Value{}, &ValueParseError{Text: token, Reason: "unterminated string"}
		}
		return String(text[1 : len(text)-1]), nil
	}

	body := text
	multiplier := 1.0
	if m, ok := suffixMultipliers[body[len(body)-1]]; ok {
		multiplier = m
		body = body[:len(body)-1]
	}

	sign := 1.0
	if strings.HasPrefix(body, "-") {
		sign = -1
		body = body[1:]
	}

	if body == "" || strings.Trim(body, "0123456789.") != "" {
		return Value{}, &ValueParseError{Text: token, Reason: "not a number"}
	}

	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return Value{}, &ValueParseError{Text: token, Reason: "not a number"}
	}

	return Number(sign * f * multiplier), nil
}

// ParsePeriod converts a period token into a day count.
// "5d", "5" and "\"5d\"" all mean five days.
func ParsePeriod(token string) (int, error) {
	text := unquote(strings.TrimSpace(token))
	text = strings.TrimSuffix(text, "d")

	days, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ValueParseError{Text: token, Reason: "not a day count"}
	}
	if days < 1 {
		return 0, &ValueParseError{Text: token, Reason: "period must be at least 1"}
	}
	return days, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
