package framesmith

import "strconv"

var ipProtoNames = map[IPProto]string{
	IPProtoHopByHop: "HopByHop", IPProtoICMP: "ICMP", IPProtoIGMP: "IGMP",
	IPProtoGGP: "GGP", IPProtoIPv4: "IPv4", IPProtoST: "ST", IPProtoTCP: "TCP",
	IPProtoCBT: "CBT", IPProtoEGP: "EGP", IPProtoIGP: "IGP",
	IPProtoUDP: "UDP", IPProtoRSVP: "RSVP", IPProtoGRE: "GRE",
	IPProtoESP: "ESP", IPProtoAH: "AH", IPProtoIPv6ICMP: "IPv6ICMP",
	IPProtoIPv6NoNxt: "IPv6NoNxt", IPProtoIPv6Opts: "IPv6Opts",
	IPProtoOSPFIGP: "OSPFIGP", IPProtoIPIP: "IPIP", IPProtoEIGRP: "EIGRP",
	IPProtoSCTP: "SCTP", IPProtoUDPLite: "UDPLite",
}

// String returns the protocol's common name, falling back to its numeric
// value for protocols outside the commonly used subset.
func (p IPProto) String() string {
	if name, ok := ipProtoNames[p]; ok {
		return name
	}
	return "IPProto(" + strconv.Itoa(int(p)) + ")"
}

func (op ARPOp) String() string {
	switch op {
	case ARPRequest:
		return "request"
	case ARPReply:
		return "reply"
	default:
		return "ARPOp(" + strconv.Itoa(int(op)) + ")"
	}
}

func (err errGeneric) String() string {
	switch err {
	case ErrBug:
		return "framesmith-bug(use build tag \"debugheaplog\")"
	case ErrPacketDrop:
		return "packet dropped"
	case ErrBadCRC:
		return "incorrect checksum"
	case ErrZeroSource:
		return "zero source(port/addr)"
	case ErrZeroDestination:
		return "zero destination(port/addr)"
	default:
		return "errGeneric(" + strconv.Itoa(int(err)) + ")"
	}
}
