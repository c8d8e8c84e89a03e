// Package ripinject builds the canonical RIP-over-UDP-over-IP frame from an
// [Options] value and submits it to a [Sink], the one-shot specialisation of
// the generic assembler used historically before the header/field/frame
// model existed. Based on nemesis-rip.c's buildrip/rip_validatedata.
package ripinject

import (
	"errors"
	"fmt"

	"github.com/framesmith/framesmith"
	"github.com/framesmith/framesmith/ethernet"
	"github.com/framesmith/framesmith/internal"
	"github.com/framesmith/framesmith/ipv4"
	"github.com/framesmith/framesmith/rip"
	"github.com/framesmith/framesmith/udp"
)

const (
	sizeEthernet = 14
	sizeIPv4     = 20
	sizeUDP      = 8
	sizeRIP      = 24
)

var (
	// ErrShortWrite reports that the sink accepted fewer bytes than the
	// assembled frame's length. Treated as a hard failure rather than a
	// partial success, since there is no partial-packet retry semantics to
	// preserve for a single-shot injection.
	ErrShortWrite = errors.New("ripinject: incomplete packet injection")
	ErrBadMetric  = errors.New("ripinject: metric out of range 0-16")
)

// Build assembles the frame described by o (applying every defaulting rule
// in resolveDefaults) without writing it anywhere; it returns the finished
// bytes plus the byte offset at which the IP header starts (0 in raw mode,
// 14 in link mode). Exposed for tests and for callers composing their own
// sink loop.
func Build(o *Options) (frame []byte, ipOffset int, err error) {
	o = cloneOptions(o)
	resolveDefaults(o)
	if !validMetric(o.RIPMetric) {
		return nil, 0, ErrBadMetric
	}

	linkOffset := 0
	if o.GotLink {
		linkOffset = sizeEthernet
	}

	// Malformed/oversize options (IHL only has 4 bits, so at most 40 bytes
	// of options, word-aligned) are discarded rather than aborting the
	// whole injection.
	ipOptLen := len(o.IPOptions)
	if ipOptLen > 40 || ipOptLen%4 != 0 {
		ipOptLen = 0
	}

	totalLen := linkOffset + sizeIPv4 + ipOptLen + sizeUDP + sizeRIP + len(o.Payload)
	buf := make([]byte, totalLen)

	if o.GotLink {
		buildEthernet(buf[:sizeEthernet], o)
	}

	ipBuf := buf[linkOffset:]
	ifrm, err := ipv4.NewFrame(ipBuf)
	if err != nil {
		return nil, 0, fmt.Errorf("ripinject: building IP header: %w", err)
	}
	// IP total length is inclusive of the IP header and any options.
	ipTotalLen := totalLen - linkOffset
	buildIPv4(ifrm, o, uint16(ipTotalLen))
	if ipOptLen > 0 {
		copy(ipBuf[sizeIPv4:sizeIPv4+ipOptLen], o.IPOptions)
		ifrm.SetVersionAndIHL(4, 5+uint8(ipOptLen/4))
	}
	udpBuf := ipBuf[sizeIPv4+ipOptLen:]

	ufrm, err := udp.NewFrame(udpBuf)
	if err != nil {
		return nil, 0, fmt.Errorf("ripinject: building UDP header: %w", err)
	}
	udpLen := sizeUDP + sizeRIP + len(o.Payload)
	buildUDP(ufrm, o, uint16(udpLen))

	rfrm, err := rip.NewFrame(udpBuf[sizeUDP:])
	if err != nil {
		return nil, 0, fmt.Errorf("ripinject: building RIP entry: %w", err)
	}
	buildRIP(rfrm, o)

	if len(o.Payload) > 0 {
		copy(udpBuf[sizeUDP+sizeRIP:], o.Payload)
	}

	// L3 checksum covers IP_HDR + ipopts; computed before L4 since UDP's
	// pseudo-header reads the now-final IP header fields.
	ifrm.SetCRC(0)
	ifrm.SetCRC(ifrm.CalculateHeaderCRC())

	var crc framesmith.CRC791
	ifrm.CRCWriteUDPPseudo(&crc)
	ufrm.SetCRC(0)
	crc.AddUint16(uint16(udpLen)) // pseudo-header length; UDP header carries its own copy too.
	crc.Write(udpBuf)
	ufrm.SetCRC(crc.Sum16())

	return buf, linkOffset, nil
}

// Inject builds the frame described by o and writes it to sink as a single
// atomic operation, mirroring nemesis-rip.c's INIT -> OPEN_SINK -> BUILD_L2?
// -> BUILD_L3 -> BUILD_L4 -> BUILD_APP -> INSERT_IPOPT? -> CHECKSUM_L3? ->
// CHECKSUM_L4 -> WRITE -> CLOSE state machine (OPEN_SINK/CLOSE are the
// caller's responsibility via the Sink argument, matching the injector being
// handed an already-open sink rather than owning its lifecycle).
func Inject(o *Options, sink Sink) (int, error) {
	if err := FillSourceMAC(o, sink); err != nil {
		return -1, err
	}
	frame, _, err := Build(o)
	if err != nil {
		return -1, err
	}
	return WriteFrame(sink, frame)
}

// FillSourceMAC auto-fills o.SrcMAC from sink's own hardware address when o
// requests link-layer injection, a source MAC was not explicitly given, and
// sink is a [LinkSink]. It is a no-op in every other case. Exposed
// separately from [Inject] so callers that need the built frame before
// writing it (e.g. for a verbose hex dump) can call FillSourceMAC, then
// [Build], then [WriteFrame] themselves without re-running [Build] twice.
func FillSourceMAC(o *Options, sink Sink) error {
	ls, ok := sink.(*LinkSink)
	if !ok || !o.GotLink {
		return nil
	}
	return fillSourceMACFromSink(o, ls)
}

// WriteFrame submits frame to sink, applying the short-write-is-failure
// policy described by [ErrShortWrite].
func WriteFrame(sink Sink, frame []byte) (int, error) {
	n, err := sink.Write(frame)
	if err != nil {
		return -1, fmt.Errorf("ripinject: write: %w", err)
	}
	if n != len(frame) {
		return n, ErrShortWrite
	}
	return n, nil
}

func cloneOptions(o *Options) *Options {
	cp := *o
	if len(o.IPOptions) > 0 {
		cp.IPOptions = append([]byte(nil), o.IPOptions...)
	}
	if len(o.Payload) > 0 {
		cp.Payload = append([]byte(nil), o.Payload...)
	}
	return &cp
}

func buildEthernet(buf []byte, o *Options) {
	efrm, err := ethernet.NewFrame(buf)
	if err != nil {
		panic(err) // unreachable: buf is always sizeEthernet bytes.
	}
	internal.SetDestHWAddr(buf, o.DstMAC)
	*efrm.SourceHardwareAddr() = o.SrcMAC
	efrm.SetEtherType(ethernet.TypeIPv4)
}

func buildIPv4(ifrm ipv4.Frame, o *Options, totalLength uint16) {
	ifrm.ClearHeader()
	ifrm.SetVersionAndIHL(4, 5)
	ifrm.SetToS(ipv4.ToS(o.IPToS))
	ifrm.SetTotalLength(totalLength)
	ifrm.SetID(o.IPID)
	ifrm.SetFlags(ipv4.Flags(o.IPFrag.Encode()))
	ifrm.SetTTL(o.IPTTL)
	ifrm.SetProtocol(framesmith.IPProtoUDP)
	*ifrm.SourceAddr() = o.IPSrc
	*ifrm.DestinationAddr() = o.IPDst
}

func buildUDP(ufrm udp.Frame, o *Options, length uint16) {
	ufrm.ClearHeader()
	ufrm.SetSourcePort(o.UDPSrcPort)
	ufrm.SetDestinationPort(o.UDPDstPort)
	ufrm.SetLength(length)
}

func buildRIP(rfrm rip.Frame, o *Options) {
	rfrm.ClearHeader()
	rfrm.SetCommand(o.RIPCmd)
	rfrm.SetVersion(o.RIPVersion)
	rfrm.SetRoutingDomain(o.RIPRoutingDomain)
	rfrm.SetAddressFamily(o.RIPAddressFamily)
	rfrm.SetRouteTag(o.RIPRouteTag)
	*rfrm.Addr() = o.RIPAddr
	*rfrm.Mask() = o.RIPMask
	*rfrm.NextHop() = o.RIPNextHop
	rfrm.SetMetric(o.RIPMetric)
}

// fillSourceMACFromSink copies the link sink's own hardware address into o
// when the caller specified a device but no explicit source MAC, matching
// nemesis_check_link's auto-fill behaviour.
func fillSourceMACFromSink(o *Options, sink *LinkSink) error {
	if o.SrcMAC != ([6]byte{}) {
		return nil
	}
	hw, err := sink.HardwareAddr()
	if err != nil {
		return fmt.Errorf("ripinject: retrieving hardware address of %s: %w", o.Device, err)
	}
	o.SrcMAC = hw
	return nil
}
