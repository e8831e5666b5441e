// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Integer lists the integer kinds accepted by the converters.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint8 | ~uint32 | ~uint64
}

// Uint8 converts signed or unsigned integers to uint8 with range validation.
func Uint8[T Integer](v T) (uint8, error) {
	switch value := any(v).(type) {
	case int:
		if value < 0 || value > math.MaxUint8 {
			return 0, fmt.Errorf("value %d out of uint8 range", v)
		}
	case int32:
		if value < 0 || value > math.MaxUint8 {
			return 0, fmt.Errorf("value %d out of uint8 range", v)
		}
	case int64:
		if value < 0 || value > math.MaxUint8 {
			return 0, fmt.Errorf("value %d out of uint8 range", v)
		}
	case uint:
		if value > math.MaxUint8 {
			return 0, fmt.Errorf("value %d out of uint8 range", v)
		}
	case uint8:
		return value, nil
	case uint32:
		if value > math.MaxUint8 {
			return 0, fmt.Errorf("value %d out of uint8 range", v)
		}
	case uint64:
		if value > math.MaxUint8 {
			return 0, fmt.Errorf("value %d out of uint8 range", v)
		}
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	return uint8(v), nil
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	switch value := any(v).(type) {
	case int:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
		return uint64(value), nil
	case int32:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
		return uint64(value), nil
	case int64:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
		return uint64(value), nil
	case uint:
		return uint64(value), nil
	case uint8:
		return uint64(value), nil
	case uint32:
		return uint64(value), nil
	case uint64:
		return value, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// Int64 converts signed or unsigned integers to int64, rejecting unsigned values above MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	switch value := any(v).(type) {
	case int:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case int64:
		return value, nil
	case uint:
		if uint64(value) > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of int64 range", v)
		}
		return int64(value), nil
	case uint8:
		return int64(value), nil
	case uint32:
		return int64(value), nil
	case uint64:
		if value > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of int64 range", v)
		}
		return int64(value), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
