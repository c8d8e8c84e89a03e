// Package arp registers the "arp" header template: the 28-byte ARP packet
// layout for IPv4-over-Ethernet, usable as any other layer in the generic
// stack even though framesmith performs no ARP resolution itself
// (address resolution is explicitly out of scope).
package arp

import (
	"github.com/framesmith/framesmith"
	"github.com/framesmith/framesmith/ethernet"
)

// Name is the registry key for this template.
const Name = "arp"

// New builds the "arp" template: hrd (16), pro (16), hln (8), pln (8), op
// (16), sha (48), spa (32), tha (48), tpa (32) -- 28 bytes total, defaulted
// for the common Ethernet/IPv4 case.
func New() *framesmith.Header {
	h := framesmith.NewHeader(Name, uint16(ethernet.TypeARP), []framesmith.FieldSpec{
		{Name: "hrd", BitWidth: 16},
		{Name: "pro", BitWidth: 16},
		{Name: "hln", BitWidth: 8},
		{Name: "pln", BitWidth: 8},
		{Name: "op", BitWidth: 16},
		{Name: "sha", BitWidth: 48},
		{Name: "spa", BitWidth: 32},
		{Name: "tha", BitWidth: 48},
		{Name: "tpa", BitWidth: 32},
	})
	must(h.DefVal("hrd", "1"))        // Ethernet
	must(h.DefVal("pro", "0x0800"))   // IPv4
	must(h.DefVal("hln", "6"))
	must(h.DefVal("pln", "4"))
	must(h.DefVal("op", "1"))         // request
	return h
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
