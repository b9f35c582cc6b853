package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/nativecql/cql/frame"
	"github.com/nativecql/cql/message"
	"github.com/nativecql/cql/primitive"
	"github.com/nativecql/cql/result"
)

// SessionState is one of the states of a Session's lifecycle state machine.
type SessionState int32

const (
	SessionDisconnected SessionState = iota
	SessionStarting
	SessionAuthenticating
	SessionReady
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionDisconnected:
		return "DISCONNECTED"
	case SessionStarting:
		return "STARTING"
	case SessionAuthenticating:
		return "AUTHENTICATING"
	case SessionReady:
		return "READY"
	case SessionClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Session is a synchronous, single-threaded CQL session built on top of CqlClientConnection. Unlike a raw
// CqlClientConnection, which freely pipelines many concurrently-outstanding requests across its stream id pool,
// Session only ever borrows one managed stream id at a time: mu serializes every call so that, at most, one request
// is outstanding, matching the single-threaded request/response model query/prepare/execute/batch are specified
// against. Any I/O failure observed while a request is outstanding moves the session straight to SessionClosed;
// there is no automatic reconnection.
type Session struct {
	client *CqlClient
	conn   *CqlClientConnection
	mu     sync.Mutex
	state  int32
}

// Open dials client's remote address, then drives the handshake (STARTUP, followed by AUTHENTICATE/AUTH_RESPONSE if
// the server demands it) through to READY. On any failure the session is left in SessionClosed and its connection,
// if any, is released.
func Open(ctx context.Context, client *CqlClient) (*Session, error) {
	s := &Session{client: client}
	atomic.StoreInt32(&s.state, int32(SessionStarting))
	conn, err := client.Connect(ctx)
	if err != nil {
		atomic.StoreInt32(&s.state, int32(SessionClosed))
		return nil, fmt.Errorf("session: cannot connect: %w", err)
	}
	s.conn = conn
	if client.Credentials != nil {
		atomic.StoreInt32(&s.state, int32(SessionAuthenticating))
	}
	if err := conn.InitiateHandshake(ManagedStreamId); err != nil {
		atomic.StoreInt32(&s.state, int32(SessionClosed))
		_ = conn.Close()
		return nil, fmt.Errorf("session: handshake failed: %w", err)
	}
	atomic.StoreInt32(&s.state, int32(SessionReady))
	log.Info().Msgf("%v: ready", s)
	return s, nil
}

func (s *Session) String() string {
	return fmt.Sprintf("CQL session [%v, state=%v]", s.client.RemoteAddress, s.State())
}

// State returns the session's current lifecycle state.
func (s *Session) State() SessionState {
	return SessionState(atomic.LoadInt32(&s.state))
}

func (s *Session) requireReady() error {
	if state := s.State(); state != SessionReady {
		return fmt.Errorf("%v: not ready, current state is %v", s, state)
	}
	return nil
}

// sendAndReceive is the single choke point every request-issuing method funnels through: it rejects requests unless
// the session is Ready, then holds mu for the request's entire round trip so that no second request can be enqueued
// while one is outstanding. Any transport-level error closes the session; a server-side ERROR response is surfaced
// to the caller without closing the session, since the connection itself is still usable.
func (s *Session) sendAndReceive(msg message.Message) (*frame.Frame, error) {
	if err := s.requireReady(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	response, err := s.conn.SendAndReceive(frame.NewFrame(ManagedStreamId, msg))
	if err != nil {
		atomic.StoreInt32(&s.state, int32(SessionClosed))
		return nil, fmt.Errorf("%v: request failed, session closed: %w", s, err)
	}
	if errMsg, ok := response.Body.Message.(message.Error); ok {
		return nil, fmt.Errorf("%v: server error %v: %v", s, errMsg.GetErrorCode(), errMsg.GetErrorMessage())
	}
	return response, nil
}

// Query executes cql with the given options (nil selects the zero-value defaults: consistency ANY, no bound
// values) and returns the resulting rows, or nil if the statement produced no result set (DDL, or DML without a
// RETURNS clause).
func (s *Session) Query(cql string, options *message.QueryOptions) (*result.Rows, error) {
	response, err := s.sendAndReceive(&message.Query{Query: cql, Options: options})
	if err != nil {
		return nil, err
	}
	return rowsFromResponse(s, response)
}

// Prepare prepares cql on the server, returning the PreparedResult whose PreparedQueryId identifies the statement
// for subsequent calls to Execute.
func (s *Session) Prepare(cql string) (*message.PreparedResult, error) {
	response, err := s.sendAndReceive(&message.Prepare{Query: cql})
	if err != nil {
		return nil, err
	}
	prepared, ok := response.Body.Message.(*message.PreparedResult)
	if !ok {
		return nil, fmt.Errorf("%v: expected RESULT PREPARED, got %v", s, response.Body.Message)
	}
	return prepared, nil
}

// Execute executes a statement previously prepared with Prepare, identified by queryId. options should carry the
// bound variable values expected by the prepared statement.
func (s *Session) Execute(queryId []byte, options *message.QueryOptions) (*result.Rows, error) {
	response, err := s.sendAndReceive(&message.Execute{QueryId: queryId, Options: options})
	if err != nil {
		return nil, err
	}
	return rowsFromResponse(s, response)
}

// Batch executes batch as a single request. Batch statements never return rows.
func (s *Session) Batch(batch *message.Batch) error {
	_, err := s.sendAndReceive(batch)
	return err
}

// Register subscribes this session's connection to the given server event types. Incoming events are delivered
// asynchronously on the channel returned by Events; Register itself only confirms that the subscription request
// completed.
func (s *Session) Register(eventTypes ...primitive.EventType) error {
	_, err := s.sendAndReceive(&message.Register{EventTypes: eventTypes})
	return err
}

// Events returns a channel of incoming EVENT frames delivered for the event types this session registered for with
// Register. The channel is closed when the session's connection is closed.
func (s *Session) Events() EventChannel {
	return s.conn.EventChannel()
}

func rowsFromResponse(s *Session, response *frame.Frame) (*result.Rows, error) {
	res, ok := response.Body.Message.(message.Result)
	if !ok {
		return nil, fmt.Errorf("%v: expected RESULT, got %v", s, response.Body.Message)
	}
	if res.GetResultType() != primitive.ResultTypeRows {
		return nil, nil
	}
	return result.NewRows(res.(*message.RowsResult)), nil
}

// Close transitions the session to SessionClosed and releases its underlying connection. Close is safe to call more
// than once and safe to call concurrently with an in-flight request, which will then fail with a closed-session
// error.
func (s *Session) Close() error {
	atomic.StoreInt32(&s.state, int32(SessionClosed))
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
