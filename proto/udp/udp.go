// Package udp registers the "udp" header template: an 8-byte UDP header
// whose FillFunc synthesises the length field from the remaining stack
// size.
package udp

import (
	"encoding/binary"

	"github.com/framesmith/framesmith"
)

// Name is the registry key for this template.
const Name = "udp"

// New builds the "udp" template: source port (16), destination port (16),
// length (16), checksum (16). Source and destination ports default to 520
// (RIP's well-known port).
func New() *framesmith.Header {
	h := framesmith.NewHeader(Name, uint16(framesmith.IPProtoUDP), []framesmith.FieldSpec{
		{Name: "sport", BitWidth: 16},
		{Name: "dport", BitWidth: 16},
		{Name: "length", BitWidth: 16},
		{Name: "checksum", BitWidth: 16},
	})
	must(h.DefVal("sport", "520"))
	must(h.DefVal("dport", "520"))
	h.FillDefaults = fillLength
	return h
}

func fillLength(fr *framesmith.Frame, idx int) error {
	length := fr.Stack()[idx].FindField("length")
	if length.Val != nil {
		return nil
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(fr.TailSize(idx)))
	return length.SetVal(buf[:])
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
