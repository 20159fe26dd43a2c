package interp

import "io"

// emitter writes output lines as they are produced and keeps a copy of
// each. Only the first write error is kept; later writes are skipped.
type emitter struct {
	w     io.Writer
	err   error
	lines []string
}

// emitLine records text and writes it followed by a newline.
func (e *emitter) emitLine(text string) {
	e.lines = append(e.lines, text)
	if e.w == nil || e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, text+"\n")
}
