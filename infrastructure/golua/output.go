package golua

import (
	"bytes"
	"io"
	"strings"

	"github.com/Shopify/go-lua"
)

// DefaultMaxOutputSize caps what a single evaluation may print (64KB).
const DefaultMaxOutputSize = 64 * 1024

// truncatedMarker is appended when an evaluation printed more than the limit.
const truncatedMarker = "... output truncated\n"

// boundedBuffer is a bytes.Buffer wrapper that limits the size of written data.
type boundedBuffer struct {
	buffer    bytes.Buffer
	limit     int
	truncated bool
}

func newBoundedBuffer(limit int) *boundedBuffer {
	return &boundedBuffer{limit: limit}
}

// Write writes data up to the limit and then silently discards the rest.
func (b *boundedBuffer) Write(p []byte) (n int, err error) {
	if b.buffer.Len() >= b.limit {
		b.truncated = true
		return len(p), nil // Pretend we wrote it all to satisfy io.Writer contract
	}

	remaining := b.limit - b.buffer.Len()
	if len(p) > remaining {
		b.truncated = true
		n, err = b.buffer.Write(p[:remaining])
		if err != nil {
			return n, err
		}
		return len(p), nil // Return len(p) to avoid short write error
	}

	return b.buffer.Write(p)
}

func (b *boundedBuffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// flushTo copies the buffered output to w and resets the buffer.
func (b *boundedBuffer) flushTo(w io.Writer) {
	if b.buffer.Len() > 0 {
		_, _ = w.Write(b.buffer.Bytes())
	}
	if b.truncated {
		_, _ = io.WriteString(w, truncatedMarker)
	}
	b.buffer.Reset()
	b.truncated = false
}

// printTo returns a replacement for lua's print that writes to out instead
// of the process stdout, which belongs to the host protocol.
func printTo(out io.StringWriter) lua.Function {
	return func(l *lua.State) int {
		n := l.Top()
		l.Global("tostring")
		var line strings.Builder
		for i := 1; i <= n; i++ {
			l.PushValue(-1)
			l.PushValue(i)
			l.Call(1, 1)
			s, ok := l.ToString(-1)
			if !ok {
				lua.Errorf(l, "'tostring' must return a string to 'print'")
			}
			if i > 1 {
				line.WriteByte('\t')
			}
			line.WriteString(s)
			l.Pop(1)
		}
		line.WriteByte('\n')
		_, _ = out.WriteString(line.String())
		return 0
	}
}
