// Package console serves the remote text console. Client sessions run in
// their own goroutines and hand each received line to the game loop as a
// Command over a bounded channel; the loop answers on the command's reply
// channel.
package console

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
)

// Greeting is sent to every client on connect.
const Greeting = "Connected!\n"

// Transports.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// ErrUnknownTransport is returned by Start for an unsupported transport.
var ErrUnknownTransport = errors.New("unknown console transport")

// Command is one line of text received from a client.
type Command struct {
	Text  string
	Reply chan<- Response
}

// Response answers a Command. Close stops the listener after the reply has
// been written; other open sessions are unaffected.
type Response struct {
	Text  string
	Close bool
}

// Respond sends r without blocking. Reply channels are created with room for
// exactly one response.
func (c Command) Respond(r Response) {
	select {
	case c.Reply <- r:
	default:
	}
}

// lineConn is one client session on either transport.
type lineConn interface {
	ReadLine() (string, error)
	WriteText(text string) error
	Close() error
	RemoteAddr() string
}

// Server accepts console clients.
type Server struct {
	transport string
	address   string
	commands  chan Command

	listener net.Listener
	stopper  func() error // closes the listener

	running      atomic.Bool
	stopCh       chan struct{} // closed by Stop only
	stopOnce     sync.Once
	listenerOnce sync.Once
	wg           sync.WaitGroup

	mu       sync.Mutex
	stopping bool
	conns    map[lineConn]struct{}
}

// NewServer creates a console server. queueSize bounds the number of
// commands waiting for the game loop.
func NewServer(transport, address string, queueSize int) *Server {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Server{
		transport: transport,
		address:   address,
		commands:  make(chan Command, queueSize),
		stopCh:    make(chan struct{}),
		conns:     make(map[lineConn]struct{}),
	}
}

// Commands returns the channel the game loop drains.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// Start binds the listener and begins accepting clients.
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("console listen on %s: %w", s.address, err)
	}
	s.listener = ln

	switch s.transport {
	case TransportTCP:
		s.stopper = ln.Close
		s.wg.Add(1)
		go s.acceptLoop()
	case TransportWebSocket:
		s.startWebSocket(ln)
	default:
		ln.Close()
		s.running.Store(false)
		return fmt.Errorf("%w: %q", ErrUnknownTransport, s.transport)
	}

	slog.Info("console listening", "transport", s.transport, "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener and every open session and waits for the
// session goroutines to finish.
func (s *Server) Stop() error {
	if !s.running.Load() {
		return nil
	}
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.closeListener()

	s.mu.Lock()
	s.stopping = true
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.running.Store(false)
	return nil
}

// closeListener stops accepting new clients. Open sessions keep running.
func (s *Server) closeListener() {
	s.listenerOnce.Do(func() {
		if s.stopper != nil {
			if err := s.stopper(); err != nil && !errors.Is(err, net.ErrClosed) {
				slog.Warn("console listener close", "error", err)
			}
		}
		slog.Info("console listener closed")
	})
}

// admit registers a new session. It closes c and returns false once Stop has
// begun, so every wg.Add happens before Stop waits.
func (s *Server) admit(c lineConn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopping {
		c.Close()
		return false
	}
	s.wg.Add(1)
	s.conns[c] = struct{}{}
	return true
}

// serve runs one admitted client session: greet, then forward each line to
// the game loop and write back its reply.
func (s *Server) serve(c lineConn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		c.Close()
		slog.Info("console client disconnected", "remote", c.RemoteAddr())
		s.wg.Done()
	}()

	slog.Info("console client connected", "remote", c.RemoteAddr())
	if err := c.WriteText(Greeting); err != nil {
		return
	}

	for {
		line, err := c.ReadLine()
		if err != nil {
			return
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		resp, ok := s.dispatch(text)
		if !ok {
			return
		}
		if err := c.WriteText(resp.Text + "\n"); err != nil {
			return
		}
		if resp.Close {
			s.closeListener()
			return
		}
	}
}

// dispatch hands text to the game loop and waits for the answer. It reports
// false if the server stopped first.
func (s *Server) dispatch(text string) (Response, bool) {
	reply := make(chan Response, 1)
	select {
	case s.commands <- Command{Text: text, Reply: reply}:
	case <-s.stopCh:
		return Response{}, false
	}

	select {
	case resp := <-reply:
		return resp, true
	case <-s.stopCh:
		return Response{}, false
	}
}
