package resilience

import "golang.org/x/sync/singleflight"

// Flight collapses concurrent calls sharing a key into one execution whose
// result every caller receives.
type Flight[T any] struct {
	group singleflight.Group
}

// Do runs fn once per in-flight key. shared reports whether the result was
// produced by another caller's execution.
func (f *Flight[T]) Do(key string, fn func() (T, error)) (value T, shared bool, err error) {
	out, err, shared := f.group.Do(key, func() (any, error) {
		return fn()
	})
	if out != nil {
		value, _ = out.(T)
	}
	return value, shared, err
}

// Forget drops key so the next Do starts a fresh execution.
func (f *Flight[T]) Forget(key string) {
	f.group.Forget(key)
}
