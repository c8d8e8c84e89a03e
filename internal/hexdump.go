package internal

import (
	"fmt"
	"io"
)

// HexMode selects hexdump's trailing column, mirroring nemesis_hexdump's
// HEX_ASCII_DECODE/HEX_RAW_DECODE switch.
type HexMode int

const (
	// HexRaw prints only the offset and hex bytes, 16 per line.
	HexRaw HexMode = iota
	// HexASCII additionally prints the printable-ASCII decode of each line.
	HexASCII
)

// DumpHex writes buf to w as a 16-byte-per-line hex dump, offset-prefixed.
// With mode HexASCII each line is followed by its printable-ASCII decoding,
// non-printable bytes rendered as '.'.
func DumpHex(w io.Writer, buf []byte, mode HexMode) error {
	for off := 0; off < len(buf); off += 16 {
		end := off + 16
		if end > len(buf) {
			end = len(buf)
		}
		line := buf[off:end]

		if _, err := fmt.Fprintf(w, "%08x: ", off); err != nil {
			return err
		}
		for i := 0; i < 16; i++ {
			if i < len(line) {
				if _, err := fmt.Fprintf(w, "%02x ", line[i]); err != nil {
					return err
				}
			} else {
				if _, err := io.WriteString(w, "   "); err != nil {
					return err
				}
			}
		}
		if mode == HexASCII {
			ascii := make([]byte, len(line))
			for i, b := range line {
				if b >= 0x20 && b < 0x7f {
					ascii[i] = b
				} else {
					ascii[i] = '.'
				}
			}
			if _, err := fmt.Fprintf(w, " %s", ascii); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
