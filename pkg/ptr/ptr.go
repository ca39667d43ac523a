// Package ptr contains small helpers for working with pointers.
package ptr

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}
