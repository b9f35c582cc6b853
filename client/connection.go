package client

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// pendingAccept is the per-client-address slot a CqlServer test harness tracks between a client dialing in and the
// harness's accept loop pairing that TCP connection with the CqlServerConnection wrapping it.
type pendingAccept struct {
	ready chan *CqlServerConnection
	conn  *CqlServerConnection
}

// acceptTracker keys accepted connections by client address so CqlServer.Accept can wait on the specific client a
// test is driving, while CqlServer.AcceptAny and CqlServer.AllAcceptedClients see every connection regardless of
// which client it belongs to.
type acceptTracker struct {
	serverId   string
	capacity   int
	byAddr     map[string]*pendingAccept
	anyAccept  chan *CqlServerConnection
	addrsMutex sync.Mutex
	closed     int32
}

func (t *acceptTracker) String() string {
	return fmt.Sprintf("%v: [accept tracker]", t.serverId)
}

func newAcceptTracker(serverId string, capacity int) (*acceptTracker, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("max connections: expecting positive, got: %v", capacity)
	}
	return &acceptTracker{
		serverId:  serverId,
		capacity:  capacity,
		byAddr:    make(map[string]*pendingAccept, capacity),
		anyAccept: make(chan *CqlServerConnection, capacity),
	}, nil
}

func (t *acceptTracker) anyConnectionChannel() <-chan *CqlServerConnection {
	return t.anyAccept
}

func (t *acceptTracker) allAcceptedClients() []*CqlServerConnection {
	t.addrsMutex.Lock()
	defer t.addrsMutex.Unlock()
	var connections []*CqlServerConnection
	for _, pending := range t.byAddr {
		if pending.conn != nil && !pending.conn.IsClosed() {
			connections = append(connections, pending.conn)
		}
	}
	return connections
}

// awaitAccept registers interest in the client at client's local address, returning the channel that will receive
// its CqlServerConnection once the accept loop pairs it up.
func (t *acceptTracker) awaitAccept(client *CqlClientConnection) (<-chan *CqlServerConnection, error) {
	if t.isClosed() {
		return nil, fmt.Errorf("%v: tracker closed", t)
	}
	addr, err := tcpAddrKey(client.conn.LocalAddr())
	if err != nil {
		return nil, err
	}
	log.Trace().Msgf("%v: client accept requested: %v", t, addr)
	t.addrsMutex.Lock()
	defer t.addrsMutex.Unlock()
	pending, found := t.byAddr[addr]
	if !found {
		log.Trace().Msgf("%v: client address unknown, registering new channel: %v", t, addr)
		if len(t.byAddr) == t.capacity {
			return nil, fmt.Errorf("%v: too many connections: %v", t, t.capacity)
		}
		pending = &pendingAccept{ready: make(chan *CqlServerConnection, 1)}
		t.byAddr[addr] = pending
	}
	return pending.ready, nil
}

// recordAccept pairs an accepted CqlServerConnection with any pending awaitAccept call for its remote address, and
// publishes it on the any-connection channel regardless.
func (t *acceptTracker) recordAccept(connection *CqlServerConnection) error {
	if t.isClosed() {
		return fmt.Errorf("%v: tracker closed", t)
	}
	addr, err := tcpAddrKey(connection.conn.RemoteAddr())
	if err != nil {
		return err
	}
	log.Trace().Msgf("%v: client accepted: %v", t, connection.conn.RemoteAddr())
	t.addrsMutex.Lock()
	defer t.addrsMutex.Unlock()
	pending, found := t.byAddr[addr]
	if found {
		pending.conn = connection
	} else {
		log.Trace().Msgf("%v: client address unknown, registering new channel: %v", t, connection.conn.RemoteAddr())
		if len(t.byAddr) == t.capacity {
			return fmt.Errorf("%v: too many connections: %v", t, t.capacity)
		}
		pending = &pendingAccept{ready: make(chan *CqlServerConnection, 1), conn: connection}
		t.byAddr[addr] = pending
	}
	pending.ready <- connection
	t.anyAccept <- connection
	return nil
}

func (t *acceptTracker) forget(connection *CqlServerConnection) {
	if t.isClosed() {
		return
	}
	addr, err := tcpAddrKey(connection.conn.RemoteAddr())
	if err != nil {
		return
	}
	log.Trace().Msgf("%v: client address closed, removing: %v", t, connection.conn.RemoteAddr())
	t.addrsMutex.Lock()
	defer t.addrsMutex.Unlock()
	if pending, found := t.byAddr[addr]; found {
		log.Trace().Msgf("%v: client address removed: %v", t, connection.conn.RemoteAddr())
		delete(t.byAddr, addr)
		close(pending.ready)
	} else {
		log.Trace().Msgf("%v: client address not found, ignoring: %v", t, connection.conn.RemoteAddr())
	}
}

func (t *acceptTracker) isClosed() bool {
	return atomic.LoadInt32(&t.closed) == 1
}

func (t *acceptTracker) close() {
	if !atomic.CompareAndSwapInt32(&t.closed, 0, 1) {
		return
	}
	log.Trace().Msgf("%v: closing", t)
	t.addrsMutex.Lock()
	defer t.addrsMutex.Unlock()
	for addr, pending := range t.byAddr {
		delete(t.byAddr, addr)
		if err := pending.conn.Close(); err != nil {
			log.Error().Err(err).Msg(err.Error())
		}
		close(pending.ready)
	}
	anyAccept := t.anyAccept
	t.anyAccept = nil
	close(anyAccept)
	log.Trace().Msgf("%v: successfully closed", t)
}

func tcpAddrKey(addr net.Addr) (string, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return "", fmt.Errorf("expected TCP address, got: %v", addr)
	}
	return fmt.Sprintf("%v__%v__%v", string(tcpAddr.IP), tcpAddr.Port, tcpAddr.Zone), nil
}
