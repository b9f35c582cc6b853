package primitive

import (
	"errors"
	"fmt"
	"io"
	"net"
)

// Inet is the [inet] protocol type: a net.IP together with a port number, as used in system.peers-style topology
// messages and EVENT notifications.
type Inet struct {
	Addr net.IP
	Port int32
}

func (i Inet) String() string {
	return fmt.Sprintf("%v:%v", i.Addr, i.Port)
}

// ReadInet reads an [inet]: an [inetaddr] followed by an [int] port number.
func ReadInet(source io.Reader) (*Inet, error) {
	addr, err := ReadInetAddr(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [inet] address: %w", err)
	}
	port, err := ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [inet] port number: %w", err)
	}
	return &Inet{Addr: addr, Port: port}, nil
}

func WriteInet(inet *Inet, dest io.Writer) error {
	if inet == nil {
		return errors.New("cannot write nil [inet]")
	}
	if err := WriteInetAddr(inet.Addr, dest); err != nil {
		return fmt.Errorf("cannot write [inet] address: %w", err)
	}
	if err := WriteInt(inet.Port, dest); err != nil {
		return fmt.Errorf("cannot write [inet] port number: %w", err)
	}
	return nil
}

func LengthOfInet(inet *Inet) (int, error) {
	if inet == nil {
		return -1, errors.New("cannot compute nil [inet] length")
	}
	length, err := LengthOfInetAddr(inet.Addr)
	if err != nil {
		return -1, err
	}
	return length + LengthOfInt, nil
}

// ReadInetAddr reads an [inetaddr]: a [byte] length (4 for IPv4, 16 for IPv6) followed by that many address bytes.
// Modeled as a net.IP since that's the idiomatic Go representation of either address family.
func ReadInetAddr(source io.Reader) (net.IP, error) {
	length, err := ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [inetaddr] length: %w", err)
	}
	switch length {
	case net.IPv4len:
		decoded := make([]byte, net.IPv4len)
		if _, err := io.ReadFull(source, decoded); err != nil {
			return nil, fmt.Errorf("cannot read [inetaddr] IPv4 content: %w", err)
		}
		return net.IPv4(decoded[0], decoded[1], decoded[2], decoded[3]), nil
	case net.IPv6len:
		decoded := make([]byte, net.IPv6len)
		if _, err := io.ReadFull(source, decoded); err != nil {
			return nil, fmt.Errorf("cannot read [inetaddr] IPv6 content: %w", err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("unknown inet address length: %d", length)
	}
}

func WriteInetAddr(inetAddr net.IP, dest io.Writer) error {
	if inetAddr == nil {
		return errors.New("cannot write nil [inetaddr]")
	}
	v4 := inetAddr.To4()
	length := byte(net.IPv6len)
	if v4 != nil {
		length = net.IPv4len
	}
	if err := WriteByte(length, dest); err != nil {
		return fmt.Errorf("cannot write [inetaddr] length: %w", err)
	}
	if v4 != nil {
		if n, err := dest.Write(v4); err != nil {
			return fmt.Errorf("cannot write [inetaddr] IPv4 content: %w", err)
		} else if n < net.IPv4len {
			return errors.New("not enough capacity to write [inetaddr] IPv4 content")
		}
		return nil
	}
	if n, err := dest.Write(inetAddr.To16()); err != nil {
		return fmt.Errorf("cannot write [inetaddr] IPv6 content: %w", err)
	} else if n < net.IPv6len {
		return errors.New("not enough capacity to write [inetaddr] IPv content")
	}
	return nil
}

func LengthOfInetAddr(inetAddr net.IP) (int, error) {
	if inetAddr == nil {
		return -1, errors.New("cannot compute nil [inetaddr] length")
	}
	if inetAddr.To4() != nil {
		return LengthOfByte + net.IPv4len, nil
	}
	return LengthOfByte + net.IPv6len, nil
}
