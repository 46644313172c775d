// Package records turns loosely typed client and property records (JSON or
// YAML documents, HTTP bodies) into typed domain values.
package records

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.yaml.in/yaml/v3"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

// ReadFile reads a JSON or YAML file holding one record or a list of records.
func ReadFile(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}
	raws, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raws, nil
}

// Parse decodes a JSON or YAML document holding one record or a list of records.
func Parse(b []byte) ([]map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected an object or a list of objects, got %T", doc)
	}
}

func DecodeClient(raw map[string]any) (domain.Client, error) {
	return decode[domain.Client](raw)
}

func DecodeProperty(raw map[string]any) (domain.Property, error) {
	return decode[domain.Property](raw)
}

func DecodeClients(raws []map[string]any) ([]domain.Client, error) {
	return decodeAll[domain.Client](raws)
}

func DecodeProperties(raws []map[string]any) ([]domain.Property, error) {
	return decodeAll[domain.Property](raws)
}

func decodeAll[T any](raws []map[string]any) ([]T, error) {
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		v, err := decode[T](raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// decode is weakly typed: "3" fills an int, 3 fills a string, a comma
// separated string fills a list and amenities may be a list or an object.
func decode[T any](raw map[string]any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			amenitiesHook,
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return out, fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

var amenitiesType = reflect.TypeOf(domain.Amenities{})

// amenitiesHook accepts amenities as a list of names, a comma separated
// string or a name → present object whose values may be yes/no words.
func amenitiesHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != amenitiesType {
		return data, nil
	}
	switch v := data.(type) {
	case []any:
		out := make(domain.Amenities, len(v))
		for _, item := range v {
			if name := strings.TrimSpace(fmt.Sprint(item)); name != "" {
				out[name] = true
			}
		}
		return out, nil
	case []string:
		out := make(domain.Amenities, len(v))
		for _, name := range v {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = true
			}
		}
		return out, nil
	case map[string]any:
		out := make(domain.Amenities, len(v))
		for name, present := range v {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = truthy(present)
			}
		}
		return out, nil
	case string:
		out := make(domain.Amenities)
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = true
			}
		}
		return out, nil
	}
	return data, nil
}

// truthy reads the loose flags found in listing exports: true, 1, "yes", "y",
// "on", "true" and "1" are set; everything else is not.
func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "y", "on", "true", "1":
			return true
		}
	}
	return false
}
