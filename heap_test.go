package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Heap_CommaAdvancesHere(t *testing.T) {
	hp := NewHeap(0)
	assert.Equal(t, uint(0), hp.Here())

	require.NoError(t, hp.Comma(11))
	assert.Equal(t, uint(1), hp.Here())
	assert.Equal(t, Cell(11), hp.Load(0))

	require.NoError(t, hp.Comma(22))
	assert.Equal(t, uint(2), hp.Here())
	assert.Equal(t, Cell(22), hp.Load(1))
}

func Test_Heap_LoadUnallocatedIsZero(t *testing.T) {
	hp := NewHeap(0)
	assert.Equal(t, Cell(0), hp.Load(100))
}

func Test_Heap_StoreDoesNotAdvanceHere(t *testing.T) {
	hp := NewHeap(0)
	require.NoError(t, hp.Comma(1))
	require.NoError(t, hp.Comma(2))
	here := hp.Here()

	require.NoError(t, hp.Store(0, 99))
	assert.Equal(t, here, hp.Here())
	assert.Equal(t, Cell(99), hp.Load(0))
}

func Test_Heap_LimitExhaustion(t *testing.T) {
	hp := NewHeap(2)
	require.NoError(t, hp.Comma(1))
	require.NoError(t, hp.Comma(2))
	assert.Error(t, hp.Comma(3))
}
