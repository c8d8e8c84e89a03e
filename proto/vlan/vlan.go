// Package vlan registers the "vlan" header template: an 802.1Q tag modeled
// as its own composable layer (eth -> vlan -> ipv4 ...) even though on the
// wire the tag is physically part of the Ethernet header.
package vlan

import (
	"encoding/binary"

	"github.com/framesmith/framesmith"
	"github.com/framesmith/framesmith/ethernet"
)

// Name is the registry key for this template.
const Name = "vlan"

// New builds the "vlan" template: tpid (16 bits, defaults to 0x8100), pcp (3
// bits), dei (1 bit), vid (12 bits), et (16 bits, the inner EtherType).
func New() *framesmith.Header {
	h := framesmith.NewHeader(Name, uint16(ethernet.TypeVLAN), []framesmith.FieldSpec{
		{Name: "tpid", BitWidth: 16},
		{Name: "pcp", BitWidth: 3},
		{Name: "dei", BitWidth: 1},
		{Name: "vid", BitWidth: 12},
		{Name: "et", BitWidth: 16},
	})
	must(h.DefVal("tpid", "0x8100"))
	h.FillDefaults = fillInnerEtherType
	return h
}

func fillInnerEtherType(fr *framesmith.Frame, idx int) error {
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
