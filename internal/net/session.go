package net

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cwgo/server/internal/protocol"
)

// Session represents a single client connection. Reads happen inline
// in the connection's own goroutine; writes are serialized through
// OutQueue and drained by a dedicated writer goroutine.
type Session struct {
	ID   uint64
	conn net.Conn
	br   *bufio.Reader

	OutQueue chan []byte // writer goroutine reads from here

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	kicked    atomic.Bool

	writeTimeout time.Duration

	// Per-second packet rate limiter (read goroutine only, no lock needed)
	pktPerSec  int   // max packets/sec (0 = unlimited)
	pktCount   int   // packets received this second
	pktResetAt int64 // unix second of last counter reset

	log *zap.Logger
}

func NewSession(conn net.Conn, id uint64, outSize, pktPerSec int, writeTimeout time.Duration, log *zap.Logger) *Session {
	return &Session{
		ID:           id,
		conn:         conn,
		br:           bufio.NewReader(conn),
		OutQueue:     make(chan []byte, outSize),
		closeCh:      make(chan struct{}),
		writeTimeout: writeTimeout,
		pktPerSec:    pktPerSec,
		log:          log.With(zap.Uint64("session", id)),
	}
}

// Start launches the writer goroutine.
func (s *Session) Start() {
	go s.writeLoop()
}

func (s *Session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// ReadID reads the next frame's packet id. Blocks until data arrives
// or the connection dies.
func (s *Session) ReadID() (protocol.Id, error) {
	if s.pktPerSec > 0 {
		now := time.Now().Unix()
		if now != s.pktResetAt {
			s.pktCount = 0
			s.pktResetAt = now
		}
		s.pktCount++
		if s.pktCount > s.pktPerSec {
			s.log.Warn("封包速率超限，斷開連線", zap.Int("pps", s.pktCount))
			return 0, ErrRateLimited
		}
	}
	return protocol.ReadId(s.br)
}

// ReadBody reads and decodes the body of a packet whose id was already
// consumed.
func (s *Session) ReadBody(id protocol.Id) (protocol.Packet, error) {
	return protocol.ReadPacketBody(s.br, id)
}

// Send enqueues a framed packet for the writer goroutine. Reports
// false when the session is gone or its queue overflowed; an overflow
// also tears the session down so one slow client never stalls the rest.
func (s *Session) Send(data []byte) bool {
	if s.closed.Load() {
		return false
	}
	select {
	case s.OutQueue <- data:
		return true
	default:
		s.log.Warn("輸出佇列已滿，斷開慢速連線")
		s.Close()
		return false
	}
}

// SendPacket frames and enqueues a packet.
func (s *Session) SendPacket(p protocol.Packet) bool {
	return s.Send(protocol.Frame(p))
}

// CloseWhenDrained hands the writer a shutdown marker and waits for it
// to finish. Everything queued before the call still reaches the
// socket; the wait is bounded by the write timeout.
func (s *Session) CloseWhenDrained() {
	select {
	case s.OutQueue <- nil:
	default:
		// Queue full; a drain would only stall on a slow peer.
		s.Close()
		return
	}
	select {
	case <-s.closeCh:
	case <-time.After(s.writeTimeout):
		s.Close()
	}
}

// FlagDisconnect marks the session for teardown; the read loop
// observes the flag between packets and exits.
func (s *Session) FlagDisconnect() {
	s.kicked.Store(true)
}

func (s *Session) ShouldDisconnect() bool {
	return s.kicked.Load()
}

// Close gracefully shuts down the session.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// writeLoop runs in its own goroutine, draining OutQueue to the TCP
// connection. A write failure closes the session; the read side
// notices through the closed socket.
func (s *Session) writeLoop() {
	defer s.Close()

	for {
		select {
		case data := <-s.OutQueue:
			if data == nil {
				return // drain marker
			}
			if !s.writeOne(data) {
				return
			}
			for len(s.OutQueue) > 0 {
				select {
				case more := <-s.OutQueue:
					if more == nil {
						return
					}
					if !s.writeOne(more) {
						return
					}
				case <-s.closeCh:
					return
				}
			}
		case <-s.closeCh:
			return
		}
	}
}

func (s *Session) writeOne(data []byte) bool {
	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	if _, err := s.conn.Write(data); err != nil {
		if !s.closed.Load() {
			s.log.Debug("寫入錯誤", zap.Error(err))
		}
		return false
	}
	return true
}
