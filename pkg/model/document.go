package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents written by the web client carry profile and listing fields the API
// does not model. They are kept in an inline Extra map so a document survives a
// decode and re-encode through its struct, in JSON and in BSON alike.

var knownFieldsCache sync.Map

// knownFields returns every json and bson name declared on t.
func knownFields(t reflect.Type) map[string]struct{} {
	if cached, ok := knownFieldsCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	fields := make(map[string]struct{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		for _, tag := range []string{f.Tag.Get("json"), f.Tag.Get("bson")} {
			name, _, _ := strings.Cut(tag, ",")
			if name != "" && name != "-" {
				fields[name] = struct{}{}
			}
		}
	}

	knownFieldsCache.Store(t, fields)
	return fields
}

// decodeWithExtra fills dst (a pointer to a struct) from data and returns the
// members dst does not declare. Operator-like keys are dropped.
func decodeWithExtra(data []byte, dst any) (bson.M, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	known := knownFields(reflect.TypeOf(dst).Elem())
	extra := bson.M{}
	for key, value := range raw {
		if _, ok := known[key]; ok || key == "" || strings.HasPrefix(key, "$") {
			continue
		}
		extra[key] = fromJSON(value)
	}

	if len(extra) == 0 {
		return nil, nil
	}
	return extra, nil
}

// encodeWithExtra marshals fields and appends the extra members it does not already declare.
func encodeWithExtra(fields any, extra bson.M) ([]byte, error) {
	base, err := json.Marshal(fields)
	if err != nil || len(extra) == 0 {
		return base, err
	}

	known := knownFields(reflect.TypeOf(fields))
	members := make(map[string]any, len(extra))
	for key, value := range extra {
		if _, ok := known[key]; ok {
			continue
		}
		members[key] = toJSON(value)
	}
	if len(members) == 0 {
		return base, nil
	}

	more, err := json.Marshal(members)
	if err != nil {
		return nil, err
	}
	if len(base) == 2 { // {}
		return more, nil
	}

	out := make([]byte, 0, len(base)+len(more))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, more[1:]...)
	return out, nil
}

// fromJSON keeps whole numbers integral so they are stored as BSON integers.
func fromJSON(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = fromJSON(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = fromJSON(item)
		}
		return out
	default:
		return v
	}
}

// toJSON turns driver types into values encoding/json renders naturally.
func toJSON(value any) any {
	switch v := value.(type) {
	case primitive.D:
		out := make(map[string]any, len(v))
		for _, e := range v {
			out[e.Key] = toJSON(e.Value)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = toJSON(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = toJSON(item)
		}
		return out
	case primitive.A:
		return toJSON([]any(v))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toJSON(item)
		}
		return out
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC()
	default:
		return v
	}
}
