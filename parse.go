package framesmith

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// ParseBytes parses a textual field value into a right-aligned buffer of
// targetWidth bytes. It accepts:
//
//   - decimal non-negative integers ("64")
//   - 0x-prefixed hex integers ("0x0800")
//   - colon-separated hex octets, i.e. a MAC address ("aa:bb:cc:dd:ee:ff"),
//     whose decoded length must equal targetWidth
//   - dotted-quad IPv4 ("192.0.2.1") when targetWidth is 4
//
// Values that overflow targetWidth are truncated, discarding high bits, to
// match the source's "assign whatever bits fit" behaviour. Unparseable text
// returns an error; callers treat this as a user input error.
func ParseBytes(text string, targetWidth int) ([]byte, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("framesmith: non-positive target width %d", targetWidth)
	}
	text = strings.TrimSpace(text)

	if strings.Contains(text, ":") {
		hw, err := net.ParseMAC(text)
		if err != nil {
			return nil, fmt.Errorf("framesmith: bad MAC %q: %w", text, err)
		}
		if len(hw) != targetWidth {
			return nil, fmt.Errorf("framesmith: MAC %q is %d bytes, want %d", text, len(hw), targetWidth)
		}
		return []byte(hw), nil
	}

	if targetWidth == 4 && strings.Count(text, ".") == 3 {
		addr, err := netip.ParseAddr(text)
		if err == nil && addr.Is4() {
			a4 := addr.As4()
			return a4[:], nil
		}
	}

	var (
		value uint64
		err   error
	)
	if hex, ok := strings.CutPrefix(text, "0x"); ok {
		value, err = strconv.ParseUint(hex, 16, 64)
	} else {
		value, err = strconv.ParseUint(text, 10, 64)
	}
	if err != nil {
		return nil, fmt.Errorf("framesmith: unparseable value %q: %w", text, err)
	}

	buf := make([]byte, targetWidth)
	var full [8]byte
	binary.BigEndian.PutUint64(full[:], value)
	if targetWidth >= 8 {
		copy(buf[targetWidth-8:], full[:])
	} else {
		copy(buf, full[8-targetWidth:])
	}
	return buf, nil
}
