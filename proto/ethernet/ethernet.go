// Package ethernet registers the "eth" header template: a 14-byte Ethernet
// II header with a FillFunc that synthesises its EtherType field from the
// header that follows it in the stack, the same distinction the fixed
// ethernet.Frame type draws between an EtherType and an 802.3 length field.
package ethernet

import (
	"encoding/binary"

	"github.com/framesmith/framesmith"
	linklayer "github.com/framesmith/framesmith/ethernet"
)

// Name is the registry key for this template.
const Name = "eth"

// New builds the "eth" template: dst (48 bits), src (48 bits), et (16 bits).
// dst defaults to the broadcast address.
func New() *framesmith.Header {
	h := framesmith.NewHeader(Name, 0, []framesmith.FieldSpec{
		{Name: "dst", BitWidth: 48},
		{Name: "src", BitWidth: 48},
		{Name: "et", BitWidth: 16},
	})
	bcast := linklayer.BroadcastAddr()
	must(h.FindField("dst").SetDef(bcast[:]))
	h.FillDefaults = fillEtherType
	return h
}

// fillEtherType sets the "et" field from the Type of the header that
// immediately follows this one on the stack, unless a value was already
// assigned explicitly.
func fillEtherType(fr *framesmith.Frame, idx int) error {
	stack := fr.Stack()
	h := stack[idx]
	et := h.FindField("et")
	if et.Val != nil || idx+1 >= len(stack) {
		return nil
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], stack[idx+1].Type)
	return et.SetVal(buf[:])
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
