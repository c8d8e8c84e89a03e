// Package payload builds ad hoc opaque data headers: the generic header
// model has no fixed field layout for a raw application payload, so unlike
// the other proto packages payload has no registry template -- New builds
// an instance sized exactly to the given bytes at push time.
package payload

import "github.com/framesmith/framesmith"

// Name identifies payload headers in diagnostics; payload has no registry
// entry to Lookup since its size is data-dependent.
const Name = "payload"

// New returns a Header holding data as a single opaque field, already
// assigned (not a default), sized to exactly len(data) bytes.
func New(data []byte) *framesmith.Header {
	h := framesmith.NewHeader(Name, 0, []framesmith.FieldSpec{
		{Name: "data", BitWidth: 8 * len(data)},
	})
	if len(data) > 0 {
		if err := h.FindField("data").SetVal(data); err != nil {
			panic(err) // unreachable: field width matches data exactly.
		}
	}
	return h
}
