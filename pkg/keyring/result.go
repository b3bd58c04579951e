package keyring

// Result 持有一次操作的结果：要么是值，要么是 *Error，不会同时持有。
// 零值等价于 Ok 了 T 的零值。
type Result[T any] struct {
	value T
	err   *Error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail 构造失败结果。err 不能为 nil。
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		panic("keyring: Fail called with nil *Error")
	}
	return Result[T]{err: err}
}

// Collect 把 (T, *Error) 形式的返回值收进 Result；err 非 nil 时丢弃 v。
func Collect[T any](v T, err *Error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOK() bool { return r.err == nil }

// Value 返回成功值；失败时返回 T 的零值。
func (r Result[T]) Value() T {
	if r.err != nil {
		var zero T
		return zero
	}
	return r.value
}

func (r Result[T]) Err() *Error { return r.err }

func (r Result[T]) Unpack() (T, *Error) {
	return r.Value(), r.err
}
