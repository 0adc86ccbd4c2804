package stasm

// ParseFlag converts a dynamically typed on/off value. Booleans pass through
// and the integers 0 and 1 map to false and true; anything else is
// ErrInvalidArgument. Configuration loaders use it for the trace and
// multi-face flags.
func ParseFlag(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return intFlag(int64(b))
	case int8:
		return intFlag(int64(b))
	case int16:
		return intFlag(int64(b))
	case int32:
		return intFlag(int64(b))
	case int64:
		return intFlag(b)
	case uint:
		return uintFlag(uint64(b))
	case uint8:
		return uintFlag(uint64(b))
	case uint16:
		return uintFlag(uint64(b))
	case uint32:
		return uintFlag(uint64(b))
	case uint64:
		return uintFlag(b)
	}
	return false, errorf("ParseFlag", ErrInvalidArgument, "flag must be true or false, got %T %v", v, v)
}

func intFlag(n int64) (bool, error) {
	if n == 0 || n == 1 {
		return n == 1, nil
	}
	return false, errorf("ParseFlag", ErrInvalidArgument, "flag must be true or false, got %d", n)
}

func uintFlag(n uint64) (bool, error) {
	if n <= 1 {
		return n == 1, nil
	}
	return false, errorf("ParseFlag", ErrInvalidArgument, "flag must be true or false, got %d", n)
}
