package monitor

// ringBuffer is a fixed-size circular buffer. Unlike a plain append-only
// ring it also supports removing the oldest element, which is what a
// chart's FIFO eviction needs.
type ringBuffer[T any] struct {
	data  []T
	head  int // next write position
	count int
	size  int
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer[T any](size int) *ringBuffer[T] {
	if size <= 0 {
		size = 1
	}
	return &ringBuffer[T]{
		data: make([]T, size),
		size: size,
	}
}

// push adds a value, overwriting the oldest one when full.
func (r *ringBuffer[T]) push(value T) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// popFront removes and returns the oldest value.
func (r *ringBuffer[T]) popFront() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	tail := (r.head - r.count + r.size) % r.size
	v := r.data[tail]
	r.data[tail] = zero
	r.count--
	return v, true
}

// len returns the number of stored values.
func (r *ringBuffer[T]) len() int {
	return r.count
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer[T]) getLast(count int) []T {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]T, count)

	// head points to the next write position, so the most recent value is at head-1
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		idx := (start + i) % r.size
		result[i] = r.data[idx]
	}

	return result
}

// getAll returns all stored values in chronological order.
func (r *ringBuffer[T]) getAll() []T {
	return r.getLast(r.count)
}
