package udp

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/framesmith/framesmith"
)

func TestFrame(t *testing.T) {
	var buf [1024]byte

	ufrm, err := NewFrame(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	v := new(framesmith.Validator)
	for i := 0; i < 100; i++ {
		// SET VALUES:
		wantSport := uint16(1 + rng.Intn(math.MaxUint16))
		ufrm.SetSourcePort(wantSport)
		wantDport := uint16(1 + rng.Intn(math.MaxUint16))
		ufrm.SetDestinationPort(wantDport)
		wantPayloadLen := rng.Intn(32)
		wantLength := uint16(sizeHeader + wantPayloadLen)
		ufrm.SetLength(wantLength)
		wantCRC := uint16(rng.Intn(math.MaxUint16))
		ufrm.SetCRC(wantCRC)
		ufrm.ValidateSize(v)
		if v.Err() != nil {
			t.Error(v.Err())
		}

		// PAYLOAD VALIDATION:
		payload := ufrm.Payload()
		wantPayload := buf[sizeHeader:wantLength]
		if len(payload) != len(wantPayload) {
			t.Errorf("want payload length %d, got %d", len(wantPayload), len(payload))
		}
		if len(payload) > 0 && &wantPayload[0] != &payload[0] {
			t.Error("first byte of payload unexpected pointer")
		}
		if len(payload) > 0 {
			payload[0] = byte(rng.Int()) // write over start of payload to catch field aliasing.
		}

		// FIELD VALIDATION:
		if sp := ufrm.SourcePort(); sp != wantSport {
			t.Errorf("want source port %d, got %d", wantSport, sp)
		}
		if dp := ufrm.DestinationPort(); dp != wantDport {
			t.Errorf("want destination port %d, got %d", wantDport, dp)
		}
		if l := ufrm.Length(); l != wantLength {
			t.Errorf("want length %d, got %d", wantLength, l)
		}
		if crc := ufrm.CRC(); crc != wantCRC {
			t.Errorf("want crc %d, got %d", wantCRC, crc)
		}
	}
}

func TestFrameValidateSizeBadLength(t *testing.T) {
	buf := make([]byte, sizeHeader)
	ufrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	ufrm.SetLength(sizeHeader - 1)

	var v framesmith.Validator
	ufrm.ValidateSize(&v)
	if v.Err() != errBadLen {
		t.Errorf("want errBadLen, got %v", v.Err())
	}
}

func TestFrameValidateSizeShortBuffer(t *testing.T) {
	buf := make([]byte, sizeHeader)
	ufrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	ufrm.SetLength(sizeHeader + 100)

	var v framesmith.Validator
	ufrm.ValidateSize(&v)
	if v.Err() != errShort {
		t.Errorf("want errShort, got %v", v.Err())
	}
}

func TestFrameValidateZeroPorts(t *testing.T) {
	buf := make([]byte, sizeHeader)
	ufrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	ufrm.SetLength(sizeHeader)
	ufrm.SetSourcePort(0)
	ufrm.SetDestinationPort(0)

	var v framesmith.Validator
	v.SetFlags(framesmith.ValidateMultiError)
	ufrm.Validate(&v)
	err = v.Err()
	if !errors.Is(err, framesmith.ErrZeroSource) {
		t.Errorf("want ErrZeroSource among validation errors, got %v", err)
	}
	if !errors.Is(err, framesmith.ErrZeroDestination) {
		t.Errorf("want ErrZeroDestination among validation errors, got %v", err)
	}

	ufrm.SetSourcePort(520)
	ufrm.SetDestinationPort(520)
	var v2 framesmith.Validator
	ufrm.Validate(&v2)
	if err := v2.Err(); err != nil {
		t.Errorf("want no error for non-zero ports, got %v", err)
	}
}

func TestFrameClearHeader(t *testing.T) {
	buf := make([]byte, sizeHeader+2)
	for i := range buf {
		buf[i] = 0xff
	}
	ufrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	ufrm.ClearHeader()
	for i, b := range buf[:sizeHeader] {
		if b != 0 {
			t.Errorf("want header byte %d cleared, got %#x", i, b)
		}
	}
	if buf[sizeHeader] != 0xff || buf[sizeHeader+1] != 0xff {
		t.Error("want ClearHeader to leave the payload untouched")
	}
}

func TestNewFrameShort(t *testing.T) {
	_, err := NewFrame(make([]byte, sizeHeader-1))
	if err == nil {
		t.Fatal("want error for a buffer shorter than the UDP header")
	}
}
