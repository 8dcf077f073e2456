package buffer

import (
	"io"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/errors"
)

func chars(s string) []textcore.Char {
	out := make([]textcore.Char, 0, len(s))
	for _, r := range s {
		out = append(out, textcore.Char(r))
	}
	return out
}

func fill(b *Buffer, n int) []textcore.Char {
	want := make([]textcore.Char, n)
	for i := range want {
		want[i] = textcore.Char(0x4E00 + i)
		b.Append(want[i])
	}
	return want
}

func TestBuffer_EmptyBeginEqualsEnd(t *testing.T) {
	b := New()
	begin, end := b.Begin(), b.End()
	assert.True(t, begin.Equal(&end))
	assert.True(t, begin.Done())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Chunks())
}

func TestBuffer_ChunkBoundaryIteration(t *testing.T) {
	b := New()
	want := make([]textcore.Char, 0, 320)
	for i := 0; i < 320; i++ {
		c := textcore.Char(i * 7)
		b.Append(c)
		want = append(want, c)
		require.Equal(t, i+1, b.Len(), "live length after append %d", i)
	}
	assert.Equal(t, 3, b.Chunks())

	var got []textcore.Char
	for it := b.Begin(); !it.Done(); it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, want, got)

	var rev []textcore.Char
	it := b.End()
	for it.Prev() {
		rev = append(rev, it.Value())
	}
	slices.Reverse(want)
	assert.Equal(t, want, rev)
	assert.Equal(t, 320, b.Len())
}

func TestBuffer_AllAndBackward(t *testing.T) {
	b := New(WithChunkCapacity(4))
	want := fill(b, 10)

	assert.Equal(t, want, slices.Collect(b.All()))
	back := slices.Collect(b.Backward())
	slices.Reverse(back)
	assert.Equal(t, want, back)
	assert.Equal(t, want, b.Slice())
}

func TestBuffer_AppendChars(t *testing.T) {
	b := New(WithChunkCapacity(3))
	b.Append('a')
	b.AppendChars('b', 'c', 'd', 'e', 'f', 'g', 'h')
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 3, b.Chunks())
	assert.Equal(t, chars("abcdefgh"), b.Slice())
}

func TestBuffer_ChunksNeverReallocated(t *testing.T) {
	b := New(WithChunkCapacity(2))
	b.Append('x')
	it := b.Begin()
	for i := 0; i < 100; i++ {
		b.Append('y')
	}
	require.True(t, it.Valid())
	assert.Equal(t, textcore.Char('x'), it.Value())
	it.Set('z')
	assert.Equal(t, textcore.Char('z'), b.Slice()[0])
}

func TestIterator_PrevAcrossPartialChunk(t *testing.T) {
	b := New(WithChunkCapacity(4))
	fill(b, 6) // chunks: 4 + 2

	it := b.End()
	require.True(t, it.Prev())
	assert.Equal(t, 5, it.Pos())
	require.True(t, it.Prev())
	require.True(t, it.Prev())
	// crossed into the first chunk, landing on its last used slot
	assert.Equal(t, 3, it.Pos())
	assert.Equal(t, textcore.Char(0x4E03), it.Value())

	begin := b.Begin()
	assert.False(t, begin.Prev())
}

func TestIterator_Seek(t *testing.T) {
	b := New(WithChunkCapacity(4))
	fill(b, 10)

	tests := []struct {
		name    string
		start   int
		delta   int
		wantOK  bool
		wantPos int
	}{
		{"zero", 3, 0, true, 3},
		{"within chunk", 0, 2, true, 2},
		{"across chunks", 1, 6, true, 7},
		{"exact end", 2, 8, true, 10},
		{"past end clamps", 5, 50, false, 10},
		{"backward within chunk", 3, -2, true, 1},
		{"backward across chunks", 9, -6, true, 3},
		{"back to begin", 9, -9, true, 0},
		{"before begin clamps", 4, -40, false, 0},
		{"backward from end", 10, -1, true, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := b.At(tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, it.Seek(tt.delta))
			assert.Equal(t, tt.wantPos, it.Pos())
			if it.Valid() {
				assert.Equal(t, textcore.Char(0x4E00+tt.wantPos), it.Value())
			}
		})
	}
}

func TestBuffer_AtOutOfBounds(t *testing.T) {
	b := New()
	fill(b, 3)

	end, err := b.At(3)
	require.NoError(t, err)
	assert.True(t, end.Done())

	_, err = b.At(4)
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBuffer, Kind: errors.KindOutOfBounds})
}

func TestIterator_CloneIsIndependent(t *testing.T) {
	b := New(WithChunkCapacity(2))
	fill(b, 5)

	it := b.Begin()
	it.Next()
	cp := it.Clone()
	cp.Next()
	cp.Next()

	assert.Equal(t, 1, it.Pos())
	assert.Equal(t, 3, cp.Pos())
	assert.Equal(t, textcore.Char(0x4E03), cp.Value())
}

func TestIterator_StaysValidAcrossAppends(t *testing.T) {
	b := New(WithChunkCapacity(4))
	b.AppendChars(1, 2)

	it := b.Begin()
	it.Next()
	it.Next()
	require.True(t, it.Done())
	end := b.End()
	assert.True(t, it.Equal(&end))
	assert.Equal(t, 2, it.Pos())

	b.AppendChars(3, 4, 5)
	require.False(t, it.Done())
	assert.False(t, end.Done())

	var got []textcore.Char
	for ; !it.Done(); it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []textcore.Char{3, 4, 5}, got)
	assert.Equal(t, 5, it.Pos())

	end = b.End()
	assert.True(t, it.Equal(&end))

	// End of a buffer whose last chunk is full moves on to the next chunk
	b.AppendChars(6, 7, 8)
	end = b.End()
	assert.Equal(t, 8, end.Pos())
	b.Append(9)
	assert.Equal(t, textcore.Char(9), end.Value())
}

func TestBuffer_ReadWhileAppending(t *testing.T) {
	b := New(WithChunkCapacity(3))

	_, err := b.ReadChar()
	assert.Equal(t, io.EOF, err)

	b.AppendChars('a', 'b')
	c, err := b.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, textcore.Char('a'), c)

	b.AppendChars('c', 'd', 'e')
	p := make([]textcore.Char, 8)
	n, err := b.Read(p)
	require.NoError(t, err)
	assert.Equal(t, chars("bcde"), p[:n])
	assert.Equal(t, 0, b.Unread())

	_, err = b.Read(p)
	assert.Equal(t, io.EOF, err)

	b.Append('f')
	assert.Equal(t, 1, b.Unread())
	c, err = b.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, textcore.Char('f'), c)

	require.NoError(t, b.UnreadChar())
	c, err = b.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, textcore.Char('f'), c)

	b.Rewind()
	assert.Equal(t, 6, b.Unread())
	assert.Error(t, b.UnreadChar())
}

func TestBuffer_Reset(t *testing.T) {
	b := New()
	fill(b, 300)
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Chunks())

	b.Append('q')
	assert.Equal(t, []textcore.Char{'q'}, b.Slice())
}

func TestBuffer_CharsCursor(t *testing.T) {
	b := New(WithChunkCapacity(2))
	want := fill(b, 5)

	var got []textcore.Char
	for c := b.Chars(); !c.Done(); c.Next() {
		got = append(got, c.Value())
	}
	assert.Equal(t, want, got)
}
