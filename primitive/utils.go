package primitive

import "net"

// CloneByteSlice returns a deep copy of o, preserving nil-ness so callers can distinguish CQL NULL from empty.
func CloneByteSlice(o []byte) []byte {
	if o == nil {
		return nil
	}
	clone := make([]byte, len(o))
	copy(clone, o)
	return clone
}

func CloneStringSlice(o []string) []string {
	if o == nil {
		return nil
	}
	clone := make([]string, len(o))
	copy(clone, o)
	return clone
}

func CloneInet(o *Inet) *Inet {
	if o == nil {
		return nil
	}
	var addr net.IP
	if o.Addr != nil {
		addr = make(net.IP, len(o.Addr))
		copy(addr, o.Addr)
	}
	return &Inet{Addr: addr, Port: o.Port}
}

func CloneOptions(o map[string]string) map[string]string {
	if o == nil {
		return nil
	}
	clone := make(map[string]string, len(o))
	for k, v := range o {
		clone[k] = v
	}
	return clone
}

func CloneSupportedOptions(o map[string][]string) map[string][]string {
	if o == nil {
		return nil
	}
	clone := make(map[string][]string, len(o))
	for k, v := range o {
		clone[k] = CloneStringSlice(v)
	}
	return clone
}
