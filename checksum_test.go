package framesmith

import "testing"

func TestChecksumSeededMatchesCRC791(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	got := ChecksumSeeded(0, data)

	var c CRC791
	c.Write(data)
	want := c.Sum16()

	if got != want {
		t.Errorf("ChecksumSeeded(0, ...) = 0x%04x, want 0x%04x", got, want)
	}
}

func TestChecksumSeededAppliesSeed(t *testing.T) {
	data := []byte{0x00, 0x01}
	seeded := ChecksumSeeded(0x1000, data)

	var c CRC791
	c.AddUint32(0x1000)
	c.Write(data)
	want := c.Sum16()

	if seeded != want {
		t.Errorf("ChecksumSeeded(0x1000, ...) = 0x%04x, want 0x%04x", seeded, want)
	}
}
