// Package chunk splits slices into bounded batches for APIs that cap the
// number of items per call.
package chunk

import (
	"errors"
	"iter"
)

// ErrInvalidSize is the panic value for a non-positive chunk size.
var ErrInvalidSize = errors.New("chunk: size must be positive")

// Split yields consecutive sub-slices of items holding at most n elements,
// in order. Empty input yields nothing. It panics with ErrInvalidSize when
// n <= 0.
func Split[T any](items []T, n int) iter.Seq[[]T] {
	if n <= 0 {
		panic(ErrInvalidSize)
	}
	return func(yield func([]T) bool) {
		for i := 0; i < len(items); i += n {
			j := min(i+n, len(items))
			if !yield(items[i:j:j]) {
				return
			}
		}
	}
}
