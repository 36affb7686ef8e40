package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

// marshalValue converts a value.Value to canonical JSON TEXT for storage.
func marshalValue(v value.Value) (string, error) {
	if v == nil {
		v = value.Null{}
	}
	data, err := value.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}
	return string(data), nil
}

// unmarshalValue parses canonical JSON TEXT back into a value.Value. Numbers
// are decoded via json.Number and rejected unless they are integral, since
// value.Value has no float variant.
func unmarshalValue(data string) (value.Value, error) {
	if data == "" {
		return value.Null{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	return fromRaw(raw)
}

func fromRaw(raw any) (value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.Null{}, nil
	case string:
		return value.String(v), nil
	case bool:
		return value.Bool(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("unmarshal value: non-integer number %q", v.String())
		}
		return value.Int(i), nil
	case []any:
		arr := make(value.Array, len(v))
		for i, elem := range v {
			val, err := fromRaw(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = val
		}
		return arr, nil
	case map[string]any:
		obj := make(value.Object, len(v))
		for k, elem := range v {
			val, err := fromRaw(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			obj[k] = val
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unmarshal value: unsupported JSON type %T", v)
	}
}

// marshalOps serializes a history (or any []Op slice, e.g. a world's fixed
// or pending ops) to canonical JSON TEXT, one array entry per event.
func marshalOps(ops []linearize.Op) (string, error) {
	arr := make(value.Array, len(ops))
	for i, op := range ops {
		arr[i] = value.Object{
			"process":  value.String(string(op.Process)),
			"type":     value.String(op.Type.String()),
			"function": value.String(string(op.Function)),
			"value":    orNull(op.Value),
		}
	}
	data, err := value.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal ops: %w", err)
	}
	return string(data), nil
}

// unmarshalOps parses canonical JSON TEXT produced by marshalOps back into
// a slice of Op.
func unmarshalOps(data string) ([]linearize.Op, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal ops: %w", err)
	}

	ops := make([]linearize.Op, 0, len(raw))
	for i, entry := range raw {
		op, err := opFromRaw(entry)
		if err != nil {
			return nil, fmt.Errorf("unmarshal ops[%d]: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func opFromRaw(entry map[string]any) (linearize.Op, error) {
	eventType, err := parseEventTypeString(fmt.Sprint(entry["type"]))
	if err != nil {
		return linearize.Op{}, err
	}
	v, err := fromRaw(entry["value"])
	if err != nil {
		return linearize.Op{}, fmt.Errorf("value: %w", err)
	}
	return linearize.Op{
		Type:     eventType,
		Process:  linearize.ProcessID(fmt.Sprint(entry["process"])),
		Function: linearize.Function(fmt.Sprint(entry["function"])),
		Value:    v,
	}, nil
}

func parseEventTypeString(s string) (linearize.EventType, error) {
	switch s {
	case "invoke":
		return linearize.Invoke, nil
	case "ok":
		return linearize.Ok, nil
	case "fail":
		return linearize.Fail, nil
	case "info":
		return linearize.Info, nil
	default:
		return 0, fmt.Errorf("unknown event type %q", s)
	}
}

func orNull(v value.Value) value.Value {
	if v == nil {
		return value.Null{}
	}
	return v
}
