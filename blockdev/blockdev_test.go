package blockdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadWrite(t *testing.T) {
	dev := NewMemory(4, 512)
	require.Equal(t, 512, dev.BlockSize())

	data := make([]byte, 512)
	for i := range data {
		data[i] = byte(i)
	}
	n, err := dev.WriteBlocks(data, 1)
	require.NoError(t, err)
	assert.Equal(t, 512, n)

	got := make([]byte, 512)
	n, err = dev.ReadBlocks(got, 1)
	require.NoError(t, err)
	assert.Equal(t, 512, n)
	assert.Equal(t, data, got)

	// Untouched block stays zero.
	zero := make([]byte, 512)
	got2 := make([]byte, 512)
	_, err = dev.ReadBlocks(got2, 2)
	require.NoError(t, err)
	assert.Equal(t, zero, got2)
}

func TestMemoryOutOfRange(t *testing.T) {
	dev := NewMemory(2, 512)
	_, err := dev.ReadBlocks(make([]byte, 512), 5)
	assert.Error(t, err)
	_, err = dev.WriteBlocks(make([]byte, 512), -1)
	assert.Error(t, err)
}

func TestMemoryEraseBlocks(t *testing.T) {
	dev := NewMemory(2, 512)
	data := make([]byte, 512)
	for i := range data {
		data[i] = 0xAA
	}
	_, err := dev.WriteBlocks(data, 0)
	require.NoError(t, err)

	err = dev.EraseBlocks(0, 1)
	require.NoError(t, err)

	got := make([]byte, 512)
	_, err = dev.ReadBlocks(got, 0)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 512), got)
}

func TestFileFromBytes(t *testing.T) {
	buf := make([]byte, 512*4)
	dev := NewFileFromBytes(buf, 512)
	require.Equal(t, 512, dev.BlockSize())

	data := []byte("hello, fat32")
	padded := make([]byte, 512)
	copy(padded, data)
	_, err := dev.WriteBlocks(padded, 2)
	require.NoError(t, err)

	got := make([]byte, 512)
	_, err = dev.ReadBlocks(got, 2)
	require.NoError(t, err)
	assert.Equal(t, padded, got)
}
