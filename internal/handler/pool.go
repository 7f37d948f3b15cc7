package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize covers the typical JSON body (sync reports, record
// envelopes) without a grow.
const responseBufferSize = 512

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
