package ripinject

import (
	"encoding/binary"

	"github.com/framesmith/framesmith/internal"
)

// prandState is an internal counter feeding internal.Prand16/Prand32; each
// call perturbs it so repeated defaulting within one invocation does not
// return the same value twice, matching libnet_get_prand's running PRNG
// state rather than a single fixed seed.
var prandState uint32 = 0x2545f491

func prand16() uint16 {
	prandState = uint32(internal.Prand32(prandState))
	return internal.Prand16(uint16(prandState))
}

func prand32() uint32 {
	prandState = uint32(internal.Prand32(prandState))
	return prandState
}

// rip2Multicast is RIP2-ROUTERS.MCAST.NET, 224.0.0.9.
var rip2Multicast = [4]byte{224, 0, 0, 9}

// resolveDefaults fills every zero-valued field that nemesis-rip.c's
// rip_validatedata defaults at injection time. It must run after CLI flags
// are applied and before the frame is built.
func resolveDefaults(o *Options) {
	if o.RIPVersion == 2 {
		if o.RIPRoutingDomain == 0 && !o.gotDomain {
			o.RIPRoutingDomain = prand16()
		}
		if o.RIPMask == ([4]byte{}) {
			o.RIPMask = [4]byte{255, 255, 255, 0}
		}
	}

	if o.IPSrc == ([4]byte{}) {
		binary.BigEndian.PutUint32(o.IPSrc[:], prand32())
	}
	if o.IPDst == ([4]byte{}) {
		switch o.RIPVersion {
		case 1:
			// Deterministic x.y.z.255 broadcast: avoids nemesis-rip.c's
			// htonl-dependent OR, which produced platform-dependent
			// results on little-endian hosts.
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], prand32())
			b[3] = 0xff
			o.IPDst = b
		case 2:
			o.IPDst = rip2Multicast
		default:
			binary.BigEndian.PutUint32(o.IPDst[:], prand32())
		}
	}

	if o.RIPAddr == ([4]byte{}) {
		binary.BigEndian.PutUint32(o.RIPAddr[:], prand32())
	}

	// A source MAC was given but no device: nothing to auto-select here
	// (device enumeration is a CLI/OS concern, not the injector's); the
	// caller is expected to supply Device whenever SrcMAC is non-zero.
	// If a device is known but no source MAC was given, the link sink's
	// own hardware address is used instead -- see FillSourceMAC.
}

// validMetric reports whether m is a valid RIP hop count (RIP defines 16 as
// "unreachable"; anything above is meaningless).
func validMetric(m uint32) bool {
	return m <= 16
}
