package ptr

// Deref returns the value of the given pointer,
// or the default if the pointer is nil.
func Deref[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
