package framesmith

import "fmt"

const (
	// maxStackDepth bounds a Frame's header stack to a fixed array size.
	maxStackDepth = 16
	// minFrameSize is the minimum output size of Frame.Serialise: Ethernet's
	// 64-byte minimum frame, reached by zero-padding.
	minFrameSize = 64
)

// Frame is a fixed-capacity (16) stack of cloned Header instances. It
// exclusively owns every pushed Header: Reset releases them all.
type Frame struct {
	stack   []*Header
	bufSize int
}

// Stack returns the frame's current header instances, outermost first.
// Callers must not retain the slice across a Push/Reset.
func (fr *Frame) Stack() []*Header { return fr.stack }

// BufSize returns the frame size computed by the last Serialise call, or 0
// if Serialise has not run yet.
func (fr *Frame) BufSize() int { return fr.bufSize }

// TailSize returns the sum, in bytes, of the sizes of the header at idx and
// every header after it on the stack — excluding any trailing pad added to
// reach minFrameSize. FillDefaults callbacks use this to compute
// length-style fields (IPv4 total length, UDP length) that must cover their
// own header plus everything encapsulated within it, but not unrelated
// padding further out in the frame.
func (fr *Frame) TailSize(idx int) int {
	n := 0
	for _, h := range fr.stack[idx:] {
		n += h.size
	}
	return n
}

// Push deep-clones tmpl and places the clone on top of the stack, returning
// the new instance so the caller can assign field values or defaults to it.
// Push fails if the stack is already at maxStackDepth.
func (fr *Frame) Push(tmpl *Header) (*Header, error) {
	if len(fr.stack) >= maxStackDepth {
		return nil, fmt.Errorf("framesmith: frame stack full (max %d)", maxStackDepth)
	}
	inst := tmpl.clone()
	fr.stack = append(fr.stack, inst)
	return inst, nil
}

// ParseFields walks tokens in (field_name, text_value) pairs, assigning each
// named field's Val. It stops at the first unrecognised field name,
// returning the token index at which the mismatch occurred and a nil error
// -- this is the normal, expected stopping condition, letting a caller parse
// a mixed field/trailing-payload token stream without a separate delimiter,
// not a failure. An odd number of tokens is an error.
func (fr *Frame) ParseFields(h *Header, tokens []string) (int, error) {
	if len(tokens)%2 != 0 {
		return 0, fmt.Errorf("framesmith: odd number of field tokens (%d)", len(tokens))
	}
	for i := 0; i < len(tokens); i += 2 {
		f := h.FindField(tokens[i])
		if f == nil {
			return i, nil
		}
		buf, err := ParseBytes(tokens[i+1], f.ByteWidth())
		if err != nil {
			return i, fmt.Errorf("framesmith: field %s: %w", tokens[i], err)
		}
		if err := f.SetVal(buf); err != nil {
			return i, err
		}
	}
	return len(tokens), nil
}

// Serialise runs the three-pass assembly algorithm and returns the finished
// wire frame:
//
//  1. Forward pass: assign each header's offsetInFrame and sum their sizes.
//  2. The total, padded up to minFrameSize, becomes the output buffer size.
//  3. Reverse pass: invoke each header's FillDefaults, outermost-last, so a
//     header can read both the already-known sizes of inner layers (e.g.
//     IPv4's length field) and the numeric Type of the header after it
//     (e.g. Ethernet's EtherType).
//  4. Forward pass: write every field's Value() (Val, else Def) into the
//     output buffer via WriteField.
func (fr *Frame) Serialise() ([]byte, error) {
	offset := 0
	for _, h := range fr.stack {
		h.offsetInFrame = offset
		offset += h.size
	}
	frameSize := offset
	if frameSize < minFrameSize {
		frameSize = minFrameSize
	}
	fr.bufSize = frameSize

	for i := len(fr.stack) - 1; i >= 0; i-- {
		if fr.stack[i].FillDefaults != nil {
			if err := fr.stack[i].FillDefaults(fr, i); err != nil {
				return nil, fmt.Errorf("framesmith: fill defaults for %s: %w", fr.stack[i].Name, err)
			}
		}
	}

	buf := make([]byte, frameSize)
	for _, h := range fr.stack {
		for i := range h.Fields {
			f := &h.Fields[i]
			v := f.Value()
			if v == nil {
				continue
			}
			WriteField(buf, h.offsetInFrame, f, v)
		}
	}
	return buf, nil
}

// Reset releases every pushed Header (and their Fields' buffers) and empties
// the stack, readying the Frame for reuse.
func (fr *Frame) Reset() {
	for _, h := range fr.stack {
		h.release()
	}
	fr.stack = fr.stack[:0]
	fr.bufSize = 0
}
