package mcp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// argError collects per-argument problems so one call reports all of them.
type argError map[string]string

func (e argError) add(name, msg string) {
	if _, ok := e[name]; !ok {
		e[name] = msg
	}
}

func stringArg(args map[string]interface{}, name string, errs argError) string {
	raw, ok := args[name]
	if !ok || raw == nil {
		errs.add(name, "is required")
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		// Numeric ids arrive as JSON numbers from some clients.
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		errs.add(name, "must be a string")
		return ""
	}
}

// optionalIntArg returns def when the argument is absent.
func optionalIntArg(args map[string]interface{}, name string, def int, errs argError) int {
	raw, ok := args[name]
	if !ok || raw == nil {
		return def
	}
	return toInt(raw, name, errs)
}

func intArg(args map[string]interface{}, name string, errs argError) int {
	raw, ok := args[name]
	if !ok || raw == nil {
		errs.add(name, "is required")
		return 0
	}
	return toInt(raw, name, errs)
}

func toInt(raw interface{}, name string, errs argError) int {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			errs.add(name, "must be an integer")
			return 0
		}
		// int(v) is implementation-defined outside [MinInt, MaxInt]; -MinInt is exactly 2^63.
		if v < math.MinInt || v >= -math.MinInt {
			errs.add(name, "is out of range")
			return 0
		}
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs.add(name, "must be an integer")
			return 0
		}
		return n
	default:
		errs.add(name, fmt.Sprintf("must be an integer, got %T", raw))
		return 0
	}
}

func stringListArg(args map[string]interface{}, name string, errs argError) []string {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		errs.add(name, "must be an array of strings")
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			errs.add(name, "must be an array of strings")
			return nil
		}
		out = append(out, s)
	}
	return out
}
