package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Stack_pushPopOrder(t *testing.T) {
	s := NewStack(4)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	require.NoError(t, s.Push(3))
	assert.Equal(t, []int32{1, 2, 3}, s.Values())

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)
	assert.Equal(t, 2, s.Len())
}

func Test_Stack_overflow(t *testing.T) {
	s := NewStack(2)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	assert.Equal(t, errStackOverflow, s.Push(3))
}

func Test_Stack_underflow(t *testing.T) {
	s := NewStack(2)
	_, err := s.Pop()
	assert.Equal(t, errStackUnderflow, err)

	_, err = s.Peek()
	assert.Equal(t, errStackUnderflow, err)

	assert.Equal(t, errStackUnderflow, s.SetTop(1))
}

func Test_Stack_SetTop(t *testing.T) {
	s := NewStack(4)
	require.NoError(t, s.Push(5))
	require.NoError(t, s.SetTop(9))
	v, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, int32(9), v)
}

func Test_Stack_ValuesIsASnapshot(t *testing.T) {
	s := NewStack(4)
	require.NoError(t, s.Push(1))
	vals := s.Values()
	require.NoError(t, s.Push(2))
	assert.Equal(t, []int32{1}, vals, "Values must not alias the live backing slice")
}
