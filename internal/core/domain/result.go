package domain

// Result pairs the value and error of one item of a bulk operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the item succeeded.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}
