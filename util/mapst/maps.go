// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package mapst contains small generic helpers for maps.
package mapst

// Map transforms the values of a map, keeping the keys.
func Map[K comparable, V any, R any, M ~map[K]V](m M, fn func(K, V) R) map[K]R {
	result, _ := Mapx(m, func(k K, v V) (R, error) {
		return fn(k, v), nil
	})
	return result
}

// Mapx is Map with an error-returning transform; the first error aborts.
func Mapx[K comparable, V any, R any, M ~map[K]V](m M, fn func(K, V) (R, error)) (map[K]R, error) {
	if len(m) == 0 {
		return nil, nil
	}
	result := make(map[K]R, len(m))
	for k, v := range m {
		r, err := fn(k, v)
		if err != nil {
			return nil, err
		}
		result[k] = r
	}
	return result, nil
}

// Filter returns the entries for which fn reports true.
func Filter[K comparable, V any, M ~map[K]V](m M, fn func(K, V) bool) M {
	result := make(M)
	for k, v := range m {
		if fn(k, v) {
			result[k] = v
		}
	}
	return result
}

// Keys returns the keys of the map in unspecified order.
func Keys[K comparable, V any, M ~map[K]V](m M) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}

// Values returns the values of the map in unspecified order.
func Values[K comparable, V any, M ~map[K]V](m M) []V {
	result := make([]V, 0, len(m))
	for _, v := range m {
		result = append(result, v)
	}
	return result
}
