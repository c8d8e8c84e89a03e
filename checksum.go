package framesmith

// ChecksumSeeded computes the RFC 791 Internet checksum of data seeded with
// seed, a caller-supplied running sum (e.g. a UDP/TCP pseudo-header sum, or
// 0 for a header with no pseudo-header). ipv4 and ripinject use CRC791
// directly where a pseudo-header needs to be built up field by field first
// (see ipv4.Frame.CRCWriteUDPPseudo).
func ChecksumSeeded(seed uint32, data []byte) uint16 {
	c := CRC791{sum: seed}
	return c.PayloadSum16(data)
}
