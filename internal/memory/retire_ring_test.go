package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type obj struct{ id int }

func TestRetireRingFIFO(t *testing.T) {
	r := NewRetireRing(4)
	a, b := &obj{1}, &obj{2}

	require.True(t, r.Enqueue(a))
	require.True(t, r.Enqueue(b))
	assert.Equal(t, 2, r.Len())

	assert.Same(t, a, r.Dequeue())
	assert.Same(t, b, r.Dequeue())
	assert.Nil(t, r.Dequeue())
	assert.True(t, r.IsEmpty())
}

func TestRetireRingFullRejects(t *testing.T) {
	r := NewRetireRing(2)
	require.True(t, r.Enqueue(&obj{1}))
	require.True(t, r.Enqueue(&obj{2}))
	assert.False(t, r.Enqueue(&obj{3}))

	r.Dequeue()
	assert.True(t, r.Enqueue(&obj{3}), "space frees after a dequeue")
}

func TestRetireRingWrapAround(t *testing.T) {
	r := NewRetireRing(2)
	for i := 0; i < 10; i++ {
		require.True(t, r.Enqueue(&obj{i}))
		got := r.Dequeue()
		require.NotNil(t, got)
		assert.Equal(t, i, got.(*obj).id)
	}
}

func TestRetireRingCapacityMustBePowerOfTwo(t *testing.T) {
	assert.Panics(t, func() { NewRetireRing(3) })
}
