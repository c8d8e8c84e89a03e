package framesmith

import "fmt"

// Field is a named, bit-width-typed slice of a header. BitWidth and
// BitOffset form the field's immutable schema; Def and Val hold its mutable
// values and are independently owned buffers.
type Field struct {
	Name      string
	BitWidth  int
	BitOffset int // derived by NewHeader, measured from the header's first bit.
	Def       Buffer
	Val       Buffer
}

// ByteWidth returns ceil(BitWidth/8), the size of a buffer able to hold this
// field's value right-aligned.
func (f *Field) ByteWidth() int {
	return (f.BitWidth + 7) / 8
}

// SetVal releases any previous value and assigns buf, which must be
// f.ByteWidth() bytes.
func (f *Field) SetVal(buf Buffer) error {
	if buf != nil && len(buf) != f.ByteWidth() {
		return fmt.Errorf("framesmith: field %q wants %d bytes, got %d", f.Name, f.ByteWidth(), len(buf))
	}
	f.Val.Release()
	f.Val = buf
	return nil
}

// SetDef releases any previous default and assigns buf, which must be
// f.ByteWidth() bytes.
func (f *Field) SetDef(buf Buffer) error {
	if buf != nil && len(buf) != f.ByteWidth() {
		return fmt.Errorf("framesmith: field %q wants %d bytes, got %d", f.Name, f.ByteWidth(), len(buf))
	}
	f.Def.Release()
	f.Def = buf
	return nil
}

// Value returns Val if set, else Def, else nil. This is the priority rule
// the assembler uses when serialising a field.
func (f *Field) Value() Buffer {
	if f.Val != nil {
		return f.Val
	}
	return f.Def
}

// clone returns a deep copy of f: Val and Def are independently cloned so
// mutating the copy never affects f.
func (f *Field) clone() Field {
	return Field{
		Name:      f.Name,
		BitWidth:  f.BitWidth,
		BitOffset: f.BitOffset,
		Def:       f.Def.Clone(),
		Val:       f.Val.Clone(),
	}
}

// release drops this field's owned buffers.
func (f *Field) release() {
	f.Val.Release()
	f.Def.Release()
}
