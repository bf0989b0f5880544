package assert

func NotNil[T any](value *T) {
	if value == nil {
		panic("expected value to be not nil")
	}
}
