package ripinject

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/framesmith/framesmith/internal"
	"golang.org/x/sys/unix"
)

// maxIPPacket bounds the raw-IP send buffer, matching libnet's IP_MAXPACKET.
const maxIPPacket = 65535

// Sink is the injection backend a built frame is handed to: either a
// link-layer device (OpenLinkSink) or a raw IP socket (OpenRawSink).
type Sink interface {
	// Write submits one complete frame as a single atomic operation.
	Write(frame []byte) (int, error)
	Close() error
}

// LinkSink writes whole Ethernet frames to a device via a raw AF_PACKET
// socket. See [internal.Bridge].
type LinkSink struct {
	br *internal.Bridge
}

// OpenLinkSink resolves device to a link descriptor and returns a Sink that
// writes complete Ethernet frames to it. Requires CAP_NET_RAW (or root).
func OpenLinkSink(device string) (*LinkSink, error) {
	if len(device) == 0 {
		return nil, errors.New("ripinject: empty device name")
	}
	if len(device) > 255 {
		return nil, fmt.Errorf("ripinject: device name %q exceeds 255 characters", device)
	}
	br, err := internal.NewBridge(device)
	if err != nil {
		return nil, fmt.Errorf("ripinject: opening link interface %q: %w", device, err)
	}
	return &LinkSink{br: br}, nil
}

func (s *LinkSink) Write(frame []byte) (int, error) { return s.br.Write(frame) }
func (s *LinkSink) Close() error                    { return s.br.Close() }

// HardwareAddr returns the link device's own MAC, used to auto-fill the
// Ethernet source address when the caller supplied a device but no MAC.
func (s *LinkSink) HardwareAddr() ([6]byte, error) { return s.br.HardwareAddress6() }

// RawSink writes IP datagrams (the caller supplies the IP header onward, no
// Ethernet framing) to an IPPROTO_RAW socket. The kernel fills in
// source-routing/fragmentation as needed; we still construct the full IP
// header ourselves and set IP_HDRINCL so it is sent unmodified.
type RawSink struct {
	fd int
}

// OpenRawSink opens an IPPROTO_RAW socket with IP_HDRINCL set and its send
// buffer sized to the maximum IP packet, mirroring libnet_open_raw_sock plus
// the SO_SNDBUF tuning nemesis-rip.c performs before injection.
func OpenRawSink() (*RawSink, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_RAW)
	if err != nil {
		return nil, fmt.Errorf("ripinject: opening raw socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SNDBUF, maxIPPacket); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ripinject: setsockopt SO_SNDBUF: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_HDRINCL, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ripinject: setsockopt IP_HDRINCL: %w", err)
	}
	return &RawSink{fd: fd}, nil
}

// Write sends frame (an IP datagram, header included) to the destination
// address encoded in its own IP header.
func (s *RawSink) Write(frame []byte) (int, error) {
	if len(frame) < 20 {
		return -1, errors.New("ripinject: raw write too short for an IP header")
	}
	dst := netip.AddrFrom4([4]byte(frame[16:20]))
	addr := &unix.SockaddrInet4{Addr: dst.As4()}
	if err := unix.Sendto(s.fd, frame, 0, addr); err != nil {
		return -1, err
	}
	return len(frame), nil
}

func (s *RawSink) Close() error { return unix.Close(s.fd) }
