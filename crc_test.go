package framesmith

import "testing"

func TestCRC791KnownHeader(t *testing.T) {
	// RFC 791 section 3.1 worked example: IPv4 header with checksum
	// already correct sums to 0xffff before complementing, zero after.
	hdr := []byte{
		0x45, 0x00, 0x00, 0x3c,
		0x1c, 0x46, 0x40, 0x00,
		0x40, 0x06, 0x00, 0x00, // checksum field zeroed
		0xac, 0x10, 0x0a, 0x63,
		0xac, 0x10, 0x0a, 0x0c,
	}
	var c CRC791
	c.WriteEven(hdr)
	sum := c.Sum16()

	// Re-insert the computed checksum and verify the header now sums to
	// the all-ones value.
	hdr[10] = byte(sum >> 8)
	hdr[11] = byte(sum)
	var verify CRC791
	verify.WriteEven(hdr)
	if verify.Sum16() != 0 {
		t.Errorf("want zero complement after checksum reinsertion, got 0x%04x", verify.Sum16())
	}
}

func TestCRC791OddLength(t *testing.T) {
	var c CRC791
	n, err := c.Write([]byte{0x00, 0x01, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("want 3 bytes reported written, got %d", n)
	}
	// 0xff padded with a zero low byte is equivalent to 0xff00.
	var ref CRC791
	ref.WriteEven([]byte{0x00, 0x01, 0xff, 0x00})
	if c.Sum16() != ref.Sum16() {
		t.Errorf("odd-length write should pad like an explicit trailing zero byte")
	}
}

func TestCRC791AddUint16And32(t *testing.T) {
	var a, b CRC791
	a.AddUint32(0x0a0b0c0d)
	b.AddUint16(0x0a0b)
	b.AddUint16(0x0c0d)
	if a.Sum16() != b.Sum16() {
		t.Error("AddUint32 should equal two AddUint16 halves")
	}
}

func TestCRC791Reset(t *testing.T) {
	var c CRC791
	c.AddUint16(0x1234)
	c.Reset()
	var zero CRC791
	if c.Sum16() != zero.Sum16() {
		t.Error("want Reset to restore the zero-value checksum state")
	}
}

func TestNeverZeroChecksum(t *testing.T) {
	if got := NeverZeroChecksum(0); got != 0xffff {
		t.Errorf("want 0xffff for zero input, got 0x%04x", got)
	}
	if got := NeverZeroChecksum(0x1234); got != 0x1234 {
		t.Errorf("want passthrough for non-zero input, got 0x%04x", got)
	}
}

func TestPayloadSum16(t *testing.T) {
	var c CRC791
	c.AddUint16(0x1111)
	got := c.PayloadSum16([]byte{0x22, 0x22})
	var ref CRC791
	ref.AddUint16(0x1111)
	ref.AddUint16(0x2222)
	if got != ref.Sum16() {
		t.Errorf("PayloadSum16 should match an equivalent AddUint16 sequence")
	}
}
