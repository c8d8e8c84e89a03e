// Package rip encapsulates the Routing Information Protocol entry carried as
// a UDP payload: command, version, routing domain, address family, route tag,
// IPv4 network address, subnet mask, next hop and metric. See [RFC1723].
//
// [RFC1723]: https://tools.ietf.org/html/rfc1723
package rip

import (
	"encoding/binary"
	"errors"

	"github.com/framesmith/framesmith"
)

// NewFrame returns a new Frame with data set to buf.
// An error is returned if the buffer size is smaller than 24.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, errors.New("rip: short buffer")
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a single RIP route entry and provides
// methods for manipulating, validating and retrieving its fields.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (rfrm Frame) RawData() []byte { return rfrm.buf }

// Command identifies the RIP message as a request or a response.
func (rfrm Frame) Command() Cmd { return Cmd(rfrm.buf[0]) }

// SetCommand sets the Command field. See [Frame.Command].
func (rfrm Frame) SetCommand(cmd Cmd) { rfrm.buf[0] = byte(cmd) }

// Version is the RIP protocol version, 1 or 2.
func (rfrm Frame) Version() uint8 { return rfrm.buf[1] }

// SetVersion sets the Version field. See [Frame.Version].
func (rfrm Frame) SetVersion(ver uint8) { rfrm.buf[1] = ver }

// RoutingDomain identifies the RIP routing domain (RIPv2 only, zero under RIPv1).
func (rfrm Frame) RoutingDomain() uint16 {
	return binary.BigEndian.Uint16(rfrm.buf[2:4])
}

// SetRoutingDomain sets the RoutingDomain field. See [Frame.RoutingDomain].
func (rfrm Frame) SetRoutingDomain(rd uint16) {
	binary.BigEndian.PutUint16(rfrm.buf[2:4], rd)
}

// AddressFamily identifies the address family of the route entry, 2 for IP.
func (rfrm Frame) AddressFamily() uint16 {
	return binary.BigEndian.Uint16(rfrm.buf[4:6])
}

// SetAddressFamily sets the AddressFamily field. See [Frame.AddressFamily].
func (rfrm Frame) SetAddressFamily(af uint16) {
	binary.BigEndian.PutUint16(rfrm.buf[4:6], af)
}

// RouteTag carries a tag value used to distinguish internal from external routes
// (RIPv2 only).
func (rfrm Frame) RouteTag() uint16 {
	return binary.BigEndian.Uint16(rfrm.buf[6:8])
}

// SetRouteTag sets the RouteTag field. See [Frame.RouteTag].
func (rfrm Frame) SetRouteTag(rt uint16) {
	binary.BigEndian.PutUint16(rfrm.buf[6:8], rt)
}

// Addr returns pointer to the advertised network address.
func (rfrm Frame) Addr() *[4]byte {
	return (*[4]byte)(rfrm.buf[8:12])
}

// Mask returns pointer to the advertised subnet mask (RIPv2 only).
func (rfrm Frame) Mask() *[4]byte {
	return (*[4]byte)(rfrm.buf[12:16])
}

// NextHop returns pointer to the advertised next-hop address (RIPv2 only).
func (rfrm Frame) NextHop() *[4]byte {
	return (*[4]byte)(rfrm.buf[16:20])
}

// Metric is the hop count of the advertised route, 1 to 15, or 16 for unreachable.
func (rfrm Frame) Metric() uint32 {
	return binary.BigEndian.Uint32(rfrm.buf[20:24])
}

// SetMetric sets the Metric field. See [Frame.Metric].
func (rfrm Frame) SetMetric(metric uint32) {
	binary.BigEndian.PutUint32(rfrm.buf[20:24], metric)
}

// Payload returns any data following the fixed 24 byte route entry.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (rfrm Frame) Payload() []byte {
	return rfrm.buf[sizeHeader:]
}

// ClearHeader zeros out the fixed header contents.
func (rfrm Frame) ClearHeader() {
	for i := range rfrm.buf[:sizeHeader] {
		rfrm.buf[i] = 0
	}
}

//
// Validation API.
//

var (
	errShort      = errors.New("rip: short buffer")
	errBadVersion = errors.New("rip: bad version")
	errBadCommand = errors.New("rip: bad command")
)

// ValidateSize checks the frame's size against the actual buffer backing it.
// It adds an error to v on finding an inconsistency.
func (rfrm Frame) ValidateSize(v *framesmith.Validator) {
	if len(rfrm.buf) < sizeHeader {
		v.AddError(errShort)
	}
}

// Validate checks for invalid command and version values.
func (rfrm Frame) Validate(v *framesmith.Validator) {
	rfrm.ValidateSize(v)
	if rfrm.Version() == 0 {
		v.AddError(errBadVersion)
	}
	cmd := rfrm.Command()
	if cmd != CmdRequest && cmd != CmdResponse {
		v.AddError(errBadCommand)
	}
}
