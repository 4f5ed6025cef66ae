package exec

import (
	"bytes"
	"io"
	"sync"
)

// multiWriter fans writes out to several writers. Unlike io.MultiWriter it
// serializes writes, since stdout and stderr are copied on separate goroutines.
type multiWriter struct {
	writers []io.Writer
	mu      sync.Mutex
}

// newMultiWriter creates a new multiWriter that writes to all provided writers.
func newMultiWriter(writers ...io.Writer) *multiWriter {
	return &multiWriter{
		writers: writers,
	}
}

// Write writes data to all underlying writers.
func (mw *multiWriter) Write(p []byte) (n int, err error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	for _, w := range mw.writers {
		n, err = w.Write(p)
		if err != nil {
			return
		}
		if n != len(p) {
			err = io.ErrShortWrite
			return
		}
	}
	return len(p), nil
}

// outputCapture captures output while optionally streaming it to another writer.
type outputCapture struct {
	buffer      *bytes.Buffer
	passthrough io.Writer
	mu          sync.Mutex
}

// newOutputCapture creates a new output capture.
// If passthrough is non-nil, output will be written to it in addition to being captured.
func newOutputCapture(passthrough io.Writer) *outputCapture {
	return &outputCapture{
		buffer:      &bytes.Buffer{},
		passthrough: passthrough,
	}
}

// Writer returns the writer the process output should be copied to.
func (oc *outputCapture) Writer() io.Writer {
	if oc.passthrough != nil {
		return newMultiWriter(lockedWriter{oc}, oc.passthrough)
	}
	return lockedWriter{oc}
}

type lockedWriter struct {
	oc *outputCapture
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.oc.mu.Lock()
	defer w.oc.mu.Unlock()
	return w.oc.buffer.Write(p)
}

// String returns the captured output as a string.
func (oc *outputCapture) String() string {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.buffer.String()
}

// combinedWriter combines stdout and stderr into a single output stream.
type combinedWriter struct {
	buffer *bytes.Buffer
	mu     sync.Mutex
}

// newCombinedWriter creates a new combined writer.
func newCombinedWriter() *combinedWriter {
	return &combinedWriter{
		buffer: &bytes.Buffer{},
	}
}

// Write writes data to the combined buffer.
func (cw *combinedWriter) Write(p []byte) (n int, err error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.buffer.Write(p)
}

// String returns the combined output as a string.
func (cw *combinedWriter) String() string {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.buffer.String()
}
