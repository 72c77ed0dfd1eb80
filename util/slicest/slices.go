package slicest

// Map

func MapXI[T, U any, S ~[]T](s S, fn func(int, T) (U, error)) ([]U, error) {
	result := make([]U, len(s))
	for i, v := range s {
		out, err := fn(i, v)
		if err != nil {
			return nil, err
		}
		result[i] = out
	}
	return result, nil
}

func MapX[T, U any, S ~[]T](s S, fn func(T) (U, error)) ([]U, error) {
	return MapXI(s, func(_ int, t T) (U, error) {
		return fn(t)
	})
}

// MapI maps slice S to []U.
// - I: Provides index to callback.
func MapI[T, U any, S ~[]T](s S, fn func(int, T) U) []U {
	result, _ := MapXI(s, func(i int, t T) (U, error) {
		return fn(i, t), nil
	})
	return result
}

func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result, _ := MapXI(s, func(_ int, t T) (U, error) {
		return fn(t), nil
	})
	return result
}

// Filter

// Filter returns the elements of S for which fn reports true, in order.
func Filter[T any, S ~[]T](s S, fn func(T) bool) []T {
	result := make([]T, 0, len(s))
	for _, t := range s {
		if fn(t) {
			result = append(result, t)
		}
	}
	return result
}
