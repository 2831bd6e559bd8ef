package models

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pandamasta/menuguide/localize"
)

// Helpers for reading loosely typed JSON records. The backend owns the wire
// schema, so every accessor tolerates missing keys and unexpected shapes.

func str(rec localize.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

func num(rec localize.Record, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func integer(rec localize.Record, key string) int {
	return int(math.Round(num(rec, key)))
}

func list(rec localize.Record, key string) []any {
	v, _ := rec[key].([]any)
	return v
}

func stringList(rec localize.Record, key string) []string {
	var out []string
	for _, v := range list(rec, key) {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AsRecord converts a decoded JSON object to a Record, or returns nil.
func AsRecord(v any) localize.Record {
	switch m := v.(type) {
	case localize.Record:
		return m
	case map[string]any:
		return localize.Record(m)
	}
	return nil
}

func sub(rec localize.Record, key string) localize.Record {
	return AsRecord(rec[key])
}
