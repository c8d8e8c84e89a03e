package ripinject

import "github.com/framesmith/framesmith/rip"

// FragOptions mirrors nemesis-rip.c's "-F D,M,R,offset" fragmentation option
// string: DF/MF/reserved(evil) bit toggles plus a 13-bit fragment offset.
type FragOptions struct {
	DontFragment  bool
	MoreFragments bool
	Reserved      bool
	Offset        uint16
}

// Encode packs the three flag bits and the fragment offset into the 16-bit
// IPv4 flags+fragment-offset field.
func (f FragOptions) Encode() uint16 {
	var v uint16
	if f.Reserved {
		v |= 0x8000
	}
	if f.DontFragment {
		v |= 0x4000
	}
	if f.MoreFragments {
		v |= 0x2000
	}
	return v | (f.Offset & 0x1fff)
}

// Options gathers every value the RIP injector needs to build one frame.
// It replaces nemesis-rip.c's static ETHERhdr/IPhdr/UDPhdr/RIPhdr globals and
// the got_link/got_ipoptions/verbose module-level flags with one struct
// passed explicitly, avoiding ad-hoc package-level mutable state: see
// DESIGN.md.
type Options struct {
	// Data link layer. GotLink selects link-layer injection (true) or raw-IP
	// injection (false); Device, SrcMAC and DstMAC are only meaningful when
	// GotLink is true.
	GotLink bool
	Device  string
	SrcMAC  [6]byte
	DstMAC  [6]byte

	// IP layer.
	IPSrc  [4]byte
	IPDst  [4]byte
	IPID   uint16
	IPTTL  uint8
	IPToS  byte
	IPFrag FragOptions
	// IPOptions is an opaque blob inserted after the fixed 20-byte IP
	// header; insertion failure (oversize, malformed) is non-fatal.
	IPOptions []byte

	// UDP layer.
	UDPSrcPort uint16
	UDPDstPort uint16

	// RIP route entry.
	RIPCmd           rip.Cmd
	RIPVersion       uint8
	RIPRoutingDomain uint16
	gotDomain        bool
	RIPAddressFamily uint16
	RIPRouteTag      uint16
	RIPAddr          [4]byte
	RIPMask          [4]byte
	RIPNextHop       [4]byte
	RIPMetric        uint32

	// Payload is an opaque blob appended after the RIP route entry.
	Payload []byte

	// Verbose is the repeat count of the "-v" flag: 1 prints resolved
	// header fields before injection, 2 hex-dumps with ASCII decoding,
	// 3 hex-dumps raw.
	Verbose int
}

// Default returns an Options populated the way nemesis-rip.c's
// rip_initdata initialises its static headers.
func Default() Options {
	var o Options
	o.DstMAC = [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	o.IPToS = 0x04 // IPTOS_RELIABILITY
	o.IPTTL = 255
	o.UDPSrcPort = 520
	o.UDPDstPort = 520
	o.RIPCmd = rip.CmdRequest
	o.RIPVersion = 2
	o.RIPAddressFamily = 2
	o.RIPMetric = 1
	return o
}

// SetRoutingDomain records an explicit user-supplied routing domain,
// suppressing the random-default rule in [resolveDefaults] (mirrors
// nemesis-rip.c's got_domain flag).
func (o *Options) SetRoutingDomain(rd uint16) {
	o.RIPRoutingDomain = rd
	o.gotDomain = true
}
