package models

import "github.com/roach88/linearize/internal/value"

func isNull(v value.Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(value.Null)
	return ok
}

// valuesEqual compares two Values by their canonical encoding rather than
// Go equality, since Array and Object are not comparable with ==.
func valuesEqual(a, b value.Value) bool {
	ab, errA := value.MarshalCanonical(orNull(a))
	bb, errB := value.MarshalCanonical(orNull(b))
	if errA != nil || errB != nil {
		return false
	}
	return string(ab) == string(bb)
}

func orNull(v value.Value) value.Value {
	if v == nil {
		return value.Null{}
	}
	return v
}
