// Package ipv4 registers the "ipv4" header template: a 20-byte IPv4 header
// (no options) whose FillFunc synthesises the protocol field from the next
// header's Type and the total length field from the remaining stack size,
// the same cross-layer glue shape as the "eth" template's EtherType fill-in.
package ipv4

import (
	"encoding/binary"

	"github.com/framesmith/framesmith"
	"github.com/framesmith/framesmith/ethernet"
)

// Name is the registry key for this template.
const Name = "ipv4"

// New builds the "ipv4" template: version (4), ihl (4), tos (8), total
// length (16), id (16), flags (3), fragment offset (13), ttl (8), protocol
// (8), checksum (16), src (32), dst (32) -- 20 bytes, no options.
func New() *framesmith.Header {
	h := framesmith.NewHeader(Name, uint16(ethernet.TypeIPv4), []framesmith.FieldSpec{
		{Name: "version", BitWidth: 4},
		{Name: "ihl", BitWidth: 4},
		{Name: "tos", BitWidth: 8},
		{Name: "totalLength", BitWidth: 16},
		{Name: "id", BitWidth: 16},
		{Name: "flags", BitWidth: 3},
		{Name: "fragOffset", BitWidth: 13},
		{Name: "ttl", BitWidth: 8},
		{Name: "protocol", BitWidth: 8},
		{Name: "checksum", BitWidth: 16},
		{Name: "src", BitWidth: 32},
		{Name: "dst", BitWidth: 32},
	})
	must(h.DefVal("version", "4"))
	must(h.DefVal("ihl", "5"))
	must(h.DefVal("tos", "0x04"))
	must(h.DefVal("ttl", "255"))
	h.FillDefaults = fillLayerGlue
	return h
}

func fillLayerGlue(fr *framesmith.Frame, idx int) error {
	stack := fr.Stack()
	h := stack[idx]

	if proto := h.FindField("protocol"); proto.Val == nil && idx+1 < len(stack) {
		if err := proto.SetVal([]byte{byte(stack[idx+1].Type)}); err != nil {
			return err
		}
	}

	if tl := h.FindField("totalLength"); tl.Val == nil {
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(fr.TailSize(idx)))
		if err := tl.SetVal(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
