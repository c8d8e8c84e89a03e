// Package proto gathers the registration routines of every protocol
// template package, replacing the C sources' constructor-attribute
// init()/uninit() pair with one explicit call made once before any frame is
// built.
package proto

import (
	"github.com/framesmith/framesmith"
	"github.com/framesmith/framesmith/proto/arp"
	"github.com/framesmith/framesmith/proto/ethernet"
	"github.com/framesmith/framesmith/proto/ipv4"
	"github.com/framesmith/framesmith/proto/udp"
	"github.com/framesmith/framesmith/proto/vlan"
)

// RegisterAll registers every protocol template package into reg and
// freezes it. Callers needing the generic stack (eth/vlan/arp/ipv4/udp,
// plus ad hoc payload.New headers) call this once at startup.
func RegisterAll(reg *framesmith.Registry) error {
	for _, tmpl := range []*framesmith.Header{
		ethernet.New(),
		vlan.New(),
		arp.New(),
		ipv4.New(),
		udp.New(),
	} {
		if err := reg.Register(tmpl); err != nil {
			return err
		}
	}
	reg.Freeze()
	return nil
}
