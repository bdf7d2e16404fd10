package tap

// Func is an identity-shaped function: it returns a value of the type it receives.
type Func[T any] func(T) T

// Identity returns value. It has no side effects.
func Identity[T any](value T) T {
	return value
}

// Tap returns value unchanged after emitting it to the configured sinks.
// Without options the value is written to stdout:
//
//	arg: myString
//	type: string
func Tap[T any](value T, opts ...Option) T {
	return Pass(tapperFor(opts), value)
}

// TapSlice is Tap for slices. The emitted event also carries len(s).
// Named slice types are preserved.
func TapSlice[S ~[]E, E any](s S, opts ...Option) S {
	return PassSlice(tapperFor(opts), s)
}

// TapMap is Tap for maps. The emitted event also carries len(m).
func TapMap[M ~map[K]V, K comparable, V any](m M, opts ...Option) M {
	return PassMap(tapperFor(opts), m)
}

// Of returns a Func that taps every value it is called with.
func Of[T any](opts ...Option) Func[T] {
	return For[T](tapperFor(opts)).Func()
}

func tapperFor(opts []Option) *Tapper {
	if len(opts) == 0 {
		return std
	}
	return New(opts...)
}
