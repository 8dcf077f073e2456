package buffer

import (
	"sync"

	"github.com/wippyai/textcore"
)

// chunks of the default capacity are recycled across Reset
var chunkPool = sync.Pool{
	New: func() any {
		return &chunk{data: make([]textcore.Char, textcore.DefaultChunkCapacity)}
	},
}

func getChunk(capacity int) *chunk {
	if capacity != textcore.DefaultChunkCapacity {
		return &chunk{data: make([]textcore.Char, capacity)}
	}
	return chunkPool.Get().(*chunk)
}

func putChunk(c *chunk) {
	if c == nil || len(c.data) != textcore.DefaultChunkCapacity {
		return // only default-sized chunks are pooled
	}
	c.used = 0
	chunkPool.Put(c)
}
