package framesmith

import "fmt"

// FillFunc computes cross-layer defaults for the header at fr.Stack()[idx]
// during Frame.Serialise's reverse pass. It may read the Type and already
// resolved fields of any other header on the same frame (e.g. an Ethernet
// header's FillFunc reads stack[idx+1].Type to synthesise its EtherType
// field), but must not resize the frame.
type FillFunc func(fr *Frame, idx int) error

// FieldSpec authors a field's name and bit width; BitOffset is derived.
type FieldSpec struct {
	Name     string
	BitWidth int
}

// Header is an instance (or template) of a protocol layer: an ordered,
// owned sequence of Fields plus an optional cross-layer FillFunc.
//
// Headers have two lifecycles: templates live in a Registry for the life of
// the process; instances are deep clones pushed onto a Frame by Frame.Push.
// Mutating a template's Fields after a clone has been pushed must not affect
// the pushed instance, which clone's deep-copy semantics guarantee.
type Header struct {
	Name         string
	Type         uint16 // e.g. an EtherType or IP protocol number, read by the previous layer's FillFunc.
	Fields       []Field
	FillDefaults FillFunc

	size          int // bytes, derived from Fields at construction.
	offsetInFrame int // set by Frame.Serialise's first forward pass.
}

// NewHeader builds a header template from an authored list of (name,
// bit-width) pairs, deriving each field's BitOffset and the header's byte
// Size as it goes.
func NewHeader(name string, typ uint16, specs []FieldSpec) *Header {
	h := &Header{Name: name, Type: typ, Fields: make([]Field, len(specs))}
	offset := 0
	for i, s := range specs {
		h.Fields[i] = Field{Name: s.Name, BitWidth: s.BitWidth, BitOffset: offset}
		offset += s.BitWidth
	}
	h.size = (offset + 7) / 8
	return h
}

// Size returns the header's serialised size in bytes.
func (h *Header) Size() int { return h.size }

// OffsetInFrame returns the byte offset this header instance was assigned
// during its owning Frame's last Serialise call.
func (h *Header) OffsetInFrame() int { return h.offsetInFrame }

// FindField returns the named field, or nil if none matches.
func (h *Header) FindField(name string) *Field {
	for i := range h.Fields {
		if h.Fields[i].Name == name {
			return &h.Fields[i]
		}
	}
	return nil
}

// DefVal parses text into the named field's default value. It is used while
// building a template, before the header is registered.
func (h *Header) DefVal(name, text string) error {
	f := h.FindField(name)
	if f == nil {
		return fmt.Errorf("framesmith: no such field %q in header %q", name, h.Name)
	}
	buf, err := ParseBytes(text, f.ByteWidth())
	if err != nil {
		return fmt.Errorf("framesmith: default for %s.%s: %w", h.Name, name, err)
	}
	return f.SetDef(buf)
}

// clone deep-copies h: Fields and their buffers are independently copied so
// mutating the instance never affects the template it came from.
func (h *Header) clone() *Header {
	c := &Header{
		Name:         h.Name,
		Type:         h.Type,
		FillDefaults: h.FillDefaults,
		size:         h.size,
		Fields:       make([]Field, len(h.Fields)),
	}
	for i := range h.Fields {
		c.Fields[i] = h.Fields[i].clone()
	}
	return c
}

// release drops every Field's owned buffers.
func (h *Header) release() {
	for i := range h.Fields {
		h.Fields[i].release()
	}
}
