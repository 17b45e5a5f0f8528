package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingBuffer_PushAndGet(t *testing.T) {
	rb := newRingBuffer[float64](3)

	assert.Nil(t, rb.getAll())
	assert.Equal(t, 0, rb.len())

	rb.push(1)
	rb.push(2)
	assert.Equal(t, []float64{1, 2}, rb.getAll())

	rb.push(3)
	rb.push(4)
	assert.Equal(t, []float64{2, 3, 4}, rb.getAll())
	assert.Equal(t, 3, rb.len())
}

func TestRingBuffer_GetLast(t *testing.T) {
	rb := newRingBuffer[int](5)
	for i := 1; i <= 7; i++ {
		rb.push(i)
	}

	assert.Equal(t, []int{6, 7}, rb.getLast(2))
	assert.Equal(t, []int{3, 4, 5, 6, 7}, rb.getLast(10))
	assert.Nil(t, rb.getLast(0))
}

func TestRingBuffer_PopFront(t *testing.T) {
	rb := newRingBuffer[string](3)

	_, ok := rb.popFront()
	assert.False(t, ok)

	rb.push("a")
	rb.push("b")
	rb.push("c")

	v, ok := rb.popFront()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, []string{"b", "c"}, rb.getAll())

	// After eviction there is room again; nothing else is overwritten
	rb.push("d")
	assert.Equal(t, []string{"b", "c", "d"}, rb.getAll())

	rb.push("e")
	assert.Equal(t, []string{"c", "d", "e"}, rb.getAll())
}

func TestRingBuffer_PopUntilEmpty(t *testing.T) {
	rb := newRingBuffer[int](2)
	rb.push(1)
	rb.push(2)
	rb.push(3)

	v, _ := rb.popFront()
	assert.Equal(t, 2, v)
	v, _ = rb.popFront()
	assert.Equal(t, 3, v)

	_, ok := rb.popFront()
	assert.False(t, ok)
	assert.Equal(t, 0, rb.len())

	rb.push(9)
	assert.Equal(t, []int{9}, rb.getAll())
}

func TestRingBuffer_ZeroSize(t *testing.T) {
	rb := newRingBuffer[int](0)
	rb.push(1)
	rb.push(2)
	assert.Equal(t, []int{2}, rb.getAll())
}
