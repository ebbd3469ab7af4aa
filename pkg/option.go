package pkg

// Option is a functional option that returns a modified copy of a T.
type Option[T any] func(T) T

// Apply applies each of opts in order to v and returns the result.
// Nil options are skipped.
func Apply[T any](v T, opts ...Option[T]) T {
	for _, opt := range opts {
		if opt != nil {
			v = opt(v)
		}
	}

	return v
}
