// Package host runs the background core as a native-messaging host: one
// bidirectional stream of length-prefixed JSON envelopes, usually over stdio.
//
// The shell sends requests the core answers, and the core sends tab-control
// requests the shell answers. Both directions share the stream; replies are
// matched to requests by envelope id, and the message type tells the two
// traffic directions apart.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/episodic-ext/episodic/browser"
	"github.com/episodic-ext/episodic/log"
	"github.com/episodic-ext/episodic/protocol"
	"github.com/samber/lo"
)

// ErrSessionClosed marks a round trip cut short by the stream closing.
var ErrSessionClosed = errors.New("session closed")

// Handler answers one shell-originated request. Implemented by the core
// dispatcher.
type Handler interface {
	Handle(ctx context.Context, env protocol.Envelope) any
}

// Session multiplexes both traffic directions over one framed stream. It
// implements browser.Host by round-tripping tab-control requests to the shell.
type Session struct {
	r io.Reader
	w io.Writer

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[int64]chan protocol.Envelope
	nextID  atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// NewSession wraps a framed stream. Serve must be called to start routing.
func NewSession(r io.Reader, w io.Writer) *Session {
	return &Session{
		r:       r,
		w:       w,
		pending: make(map[int64]chan protocol.Envelope),
		done:    make(chan struct{}),
	}
}

// Serve reads envelopes until the stream closes, answering shell requests via
// the handler and delivering shell replies to in-flight round trips. A clean
// shell disconnect returns nil.
func (s *Session) Serve(ctx context.Context, handler Handler) error {
	defer s.closeWith(ErrSessionClosed)

	for {
		frame, err := readFrame(s.r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("shell disconnected")
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}

		var env protocol.Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			log.Errorf("discarding unparseable frame: %v", err)
			continue
		}

		if isShellReply(env.Type) {
			s.deliver(env)
			continue
		}

		go s.answer(ctx, handler, env)
	}
}

// isShellReply reports whether a message type belongs to the core-to-shell
// direction, meaning an incoming envelope of that type answers one of our
// round trips.
func isShellReply(msgType string) bool {
	switch msgType {
	case protocol.MsgTabQuery, protocol.MsgTabGet, protocol.MsgTabSend, protocol.MsgInjectDetector:
		return true
	default:
		return false
	}
}

func (s *Session) deliver(env protocol.Envelope) {
	s.mu.Lock()
	ch, ok := s.pending[env.ID]
	if ok {
		delete(s.pending, env.ID)
	}
	s.mu.Unlock()

	if !ok {
		log.Debugf("dropping %s reply to unknown request %d", env.Type, env.ID)
		return
	}
	ch <- env
}

func (s *Session) answer(ctx context.Context, handler Handler, env protocol.Envelope) {
	result := handler.Handle(ctx, env)

	respType := env.Type
	if _, failed := result.(protocol.ErrorResponse); failed {
		respType = protocol.MsgError
	}

	reply := protocol.Envelope{
		ID:      env.ID,
		Type:    respType,
		Payload: lo.Must(json.Marshal(result)),
	}
	if err := s.send(reply); err != nil {
		log.Errorf("reply to request %d failed: %v", env.ID, err)
	}
}

// send frames and writes one envelope. Writes are serialized so concurrent
// replies and round trips never interleave frames.
func (s *Session) send(env protocol.Envelope) error {
	payload := lo.Must(json.Marshal(env))

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return writeFrame(s.w, payload)
}

// roundTrip sends one core-to-shell request and waits for the reply envelope.
func (s *Session) roundTrip(ctx context.Context, msgType string, payload any) (protocol.Envelope, error) {
	id := s.nextID.Add(1)
	ch := make(chan protocol.Envelope, 1)

	s.mu.Lock()
	s.pending[id] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}()

	env := protocol.Envelope{ID: id, Type: msgType}
	if payload != nil {
		env.Payload = lo.Must(json.Marshal(payload))
	}
	if err := s.send(env); err != nil {
		return protocol.Envelope{}, err
	}

	select {
	case reply := <-ch:
		return reply, nil
	case <-ctx.Done():
		return protocol.Envelope{}, ctx.Err()
	case <-s.done:
		return protocol.Envelope{}, s.err
	}
}

func (s *Session) closeWith(err error) {
	s.closeOnce.Do(func() {
		s.err = err
		close(s.done)
	})
}

// Tabs implements browser.Host over the shell's tab API.
func (s *Session) Tabs(ctx context.Context) ([]protocol.Tab, error) {
	reply, err := s.roundTrip(ctx, protocol.MsgTabQuery, nil)
	if err != nil {
		return nil, err
	}

	var resp protocol.TabQueryResponse
	if err := json.Unmarshal(reply.Payload, &resp); err != nil {
		return nil, fmt.Errorf("decode tab query reply: %w", err)
	}
	if !resp.Success {
		return nil, errors.New(orUnknown(resp.Error, "tab query failed"))
	}
	return resp.Tabs, nil
}

// TabByID implements browser.Host. A missing tab maps to ErrTabNotFound.
func (s *Session) TabByID(ctx context.Context, id int) (protocol.Tab, error) {
	reply, err := s.roundTrip(ctx, protocol.MsgTabGet, protocol.TabGetRequest{TabID: id})
	if err != nil {
		return protocol.Tab{}, err
	}

	var resp protocol.TabGetResponse
	if err := json.Unmarshal(reply.Payload, &resp); err != nil {
		return protocol.Tab{}, fmt.Errorf("decode tab get reply: %w", err)
	}
	if !resp.Success {
		return protocol.Tab{}, fmt.Errorf("%w: tab %d", browser.ErrTabNotFound, id)
	}
	return resp.Tab, nil
}

// SendMessage implements browser.Host. A page with no detector listening maps
// to ErrNoReceiver so the orchestrator can inject and retry.
func (s *Session) SendMessage(ctx context.Context, tabID int, msg protocol.Envelope) (json.RawMessage, error) {
	reply, err := s.roundTrip(ctx, protocol.MsgTabSend, protocol.TabSendRequest{TabID: tabID, Message: msg})
	if err != nil {
		return nil, err
	}

	var resp protocol.TabSendResponse
	if err := json.Unmarshal(reply.Payload, &resp); err != nil {
		return nil, fmt.Errorf("decode tab send reply: %w", err)
	}
	if resp.NoReceiver {
		return nil, fmt.Errorf("%w %d", browser.ErrNoReceiver, tabID)
	}
	if !resp.Success {
		return nil, errors.New(orUnknown(resp.Error, "message delivery failed"))
	}
	return resp.Response, nil
}

// InjectDetector implements browser.Host.
func (s *Session) InjectDetector(ctx context.Context, tabID int) error {
	reply, err := s.roundTrip(ctx, protocol.MsgInjectDetector, protocol.InjectDetectorRequest{TabID: tabID})
	if err != nil {
		return err
	}

	var resp protocol.InjectDetectorResponse
	if err := json.Unmarshal(reply.Payload, &resp); err != nil {
		return fmt.Errorf("decode inject reply: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("inject detector into tab %d: %s", tabID, orUnknown(resp.Error, "unknown error"))
	}
	return nil
}

func orUnknown(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
