package utils

// ToPtr returns a pointer to t.
func ToPtr[T any](t T) *T {
	return &t
}

// FromPtr dereferences t, returning the zero value when t is nil.
func FromPtr[T any](t *T) T {
	var zero T
	if t == nil {
		return zero
	}
	return *t
}

// ToPtrNil maps the empty string to nil, anything else to a pointer.
func ToPtrNil(t string) *string {
	if t == "" {
		return nil
	}
	return &t
}
