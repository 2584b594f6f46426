package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Each model keeps fields it does not declare in an inline Extra map, so a
// document written by the admin dashboard or an older client comes back out
// with every field it went in with. Extra is nil when there are none.

// declared caches the lower-cased json names of each model type.
var declared sync.Map // reflect.Type -> map[string]struct{}

func jsonNames(t reflect.Type) map[string]struct{} {
	if v, ok := declared.Load(t); ok {
		return v.(map[string]struct{})
	}
	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		names[strings.ToLower(name)] = struct{}{}
	}
	declared.Store(t, names)
	return names
}

// marshalWithExtra encodes the declared fields of known and then adds the
// extra ones. A declared field always wins over an extra of the same name.
func marshalWithExtra(known any, extra bson.M) ([]byte, error) {
	raw, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return raw, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := fields[k]; ok {
			continue
		}
		b, err := json.Marshal(plain(v))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		fields[k] = b
	}
	return json.Marshal(fields)
}

// unmarshalWithExtra decodes data into known (a pointer to a struct without
// JSON methods) and collects the top-level keys it does not declare.
func unmarshalWithExtra(data []byte, known any, extra *bson.M) error {
	if err := json.Unmarshal(data, known); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	names := jsonNames(reflect.TypeOf(known).Elem())
	*extra = nil
	for k, raw := range fields {
		if _, ok := names[strings.ToLower(k)]; ok {
			continue
		}
		if strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			return fmt.Errorf("field name %q is not allowed", k)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if *extra == nil {
			*extra = bson.M{}
		}
		(*extra)[k] = v
	}
	return nil
}

// plain turns decoded bson containers back into JSON-friendly maps and slices.
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		return plainMap(t)
	case map[string]any:
		return plainMap(t)
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		return plainSlice(t)
	case []any:
		return plainSlice(t)
	}
	return v
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = plain(e)
	}
	return out
}

func plainSlice(s []any) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = plain(e)
	}
	return out
}
