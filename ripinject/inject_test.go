package ripinject

import (
	"testing"

	"github.com/framesmith/framesmith/ethernet"
	"github.com/framesmith/framesmith/ipv4"
	"github.com/framesmith/framesmith/rip"
	"github.com/framesmith/framesmith/udp"
)

// TestBuildMinimalRIPv2Request exercises the minimal-defaults scenario:
// every field left zero-valued resolves to nemesis-rip.c's documented
// defaults.
func TestBuildMinimalRIPv2Request(t *testing.T) {
	o := Default()
	o.GotLink = true
	o.DstMAC = ethernet.BroadcastAddr()

	frame, ipOffset, err := Build(&o)
	if err != nil {
		t.Fatal(err)
	}
	if ipOffset != sizeEthernet {
		t.Fatalf("want IP offset %d, got %d", sizeEthernet, ipOffset)
	}

	efrm, err := ethernet.NewFrame(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !efrm.IsBroadcast() {
		t.Error("want broadcast destination")
	}
	if et := efrm.EtherTypeOrSize(); et != ethernet.TypeIPv4 {
		t.Errorf("want EtherType IPv4, got %v", et)
	}

	ifrm, err := ipv4.NewFrame(frame[sizeEthernet:])
	if err != nil {
		t.Fatal(err)
	}
	if proto := ifrm.Protocol(); proto != 17 {
		t.Errorf("want protocol 17 (UDP), got %d", proto)
	}
	if ttl := ifrm.TTL(); ttl != 255 {
		t.Errorf("want TTL 255, got %d", ttl)
	}
	if tos := ifrm.ToS(); tos != 0x04 {
		t.Errorf("want ToS 0x04, got 0x%x", tos)
	}
	wantDst := [4]byte{224, 0, 0, 9}
	if dst := *ifrm.DestinationAddr(); dst != wantDst {
		t.Errorf("want RIPv2 multicast dst %v, got %v", wantDst, dst)
	}

	udpBuf := frame[sizeEthernet+ifrm.HeaderLength():]
	ufrm, err := udp.NewFrame(udpBuf)
	if err != nil {
		t.Fatal(err)
	}
	if sp := ufrm.SourcePort(); sp != 520 {
		t.Errorf("want UDP sport 520, got %d", sp)
	}
	if dp := ufrm.DestinationPort(); dp != 520 {
		t.Errorf("want UDP dport 520, got %d", dp)
	}

	rfrm, err := rip.NewFrame(udpBuf[8:])
	if err != nil {
		t.Fatal(err)
	}
	if cmd := rfrm.Command(); cmd != rip.CmdRequest {
		t.Errorf("want RIP cmd request, got %v", cmd)
	}
	if ver := rfrm.Version(); ver != 2 {
		t.Errorf("want RIP version 2, got %d", ver)
	}
	if af := rfrm.AddressFamily(); af != 2 {
		t.Errorf("want RIP AF 2, got %d", af)
	}
	wantMask := [4]byte{255, 255, 255, 0}
	if mask := *rfrm.Mask(); mask != wantMask {
		t.Errorf("want RIP mask %v, got %v", wantMask, mask)
	}

	if len(frame) < sizeEthernet+20+8+24 {
		t.Errorf("frame too short: %d bytes", len(frame))
	}
}

// TestBuildIPv4ChecksumValid exercises the S5 property: the one's-complement
// sum over the 20 byte IP header including its freshly computed checksum
// field is 0xFFFF.
func TestBuildIPv4ChecksumValid(t *testing.T) {
	o := Default()
	o.GotLink = false
	o.IPSrc = [4]byte{192, 0, 2, 1}
	o.IPDst = [4]byte{192, 0, 2, 2}

	frame, ipOffset, err := Build(&o)
	if err != nil {
		t.Fatal(err)
	}
	ifrm, err := ipv4.NewFrame(frame[ipOffset:])
	if err != nil {
		t.Fatal(err)
	}
	var sum uint32
	buf := frame[ipOffset : ipOffset+ifrm.HeaderLength()]
	for i := 0; i < len(buf); i += 2 {
		sum += uint32(buf[i])<<8 | uint32(buf[i+1])
	}
	for sum>>16 != 0 {
		sum = (sum & 0xffff) + sum>>16
	}
	if sum != 0xffff {
		t.Errorf("want one's-complement sum 0xffff, got 0x%x", sum)
	}
}

func TestBuildRawMode(t *testing.T) {
	o := Default()
	o.GotLink = false
	frame, ipOffset, err := Build(&o)
	if err != nil {
		t.Fatal(err)
	}
	if ipOffset != 0 {
		t.Errorf("want IP offset 0 in raw mode, got %d", ipOffset)
	}
	if len(frame) != 20+8+24 {
		t.Errorf("want frame length %d, got %d", 20+8+24, len(frame))
	}
}

func TestBuildRIPv1DestinationDeterministic(t *testing.T) {
	o := Default()
	o.RIPVersion = 1
	frame, ipOffset, err := Build(&o)
	if err != nil {
		t.Fatal(err)
	}
	ifrm, err := ipv4.NewFrame(frame[ipOffset:])
	if err != nil {
		t.Fatal(err)
	}
	dst := ifrm.DestinationAddr()
	if dst[3] != 0xff {
		t.Errorf("want RIPv1 broadcast with last octet 0xff, got %v", *dst)
	}
}

func TestBuildBadMetric(t *testing.T) {
	o := Default()
	o.RIPMetric = 17
	_, _, err := Build(&o)
	if err != ErrBadMetric {
		t.Fatalf("want ErrBadMetric, got %v", err)
	}
}

type fakeSink struct {
	accept int
	closed bool
}

func (s *fakeSink) Write(frame []byte) (int, error) {
	if s.accept < len(frame) {
		return s.accept, nil
	}
	return len(frame), nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

func TestInjectShortWrite(t *testing.T) {
	o := Default()
	sink := &fakeSink{accept: 1}
	_, err := Inject(&o, sink)
	if err != ErrShortWrite {
		t.Fatalf("want ErrShortWrite, got %v", err)
	}
}

func TestInjectFullWrite(t *testing.T) {
	o := Default()
	sink := &fakeSink{accept: 1 << 20}
	n, err := Inject(&o, sink)
	if err != nil {
		t.Fatal(err)
	}
	if n != 20+8+24 {
		t.Errorf("want %d bytes written, got %d", 20+8+24, n)
	}
}

func TestFillSourceMACNoopWithoutLinkSink(t *testing.T) {
	o := Default()
	o.GotLink = true
	sink := &fakeSink{accept: 1 << 20}
	if err := FillSourceMAC(&o, sink); err != nil {
		t.Fatal(err)
	}
	if o.SrcMAC != ([6]byte{}) {
		t.Error("want SrcMAC left untouched for a non-LinkSink")
	}
}

func TestFragOptionsEncode(t *testing.T) {
	f := FragOptions{DontFragment: true, Offset: 100}
	enc := f.Encode()
	if enc&0x4000 == 0 {
		t.Error("want DF bit set")
	}
	if enc&0x1fff != 100 {
		t.Errorf("want offset 100, got %d", enc&0x1fff)
	}
}
