// Package serve runs a long-lived NDJSON checker over a pair of streams, so an
// editor or build tool can check buffers without starting a process per file.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/praetorian-inc/nestcheck/pkg/scanner"
)

// Version is the server protocol version
const Version = "1.1.0"

type handlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// message is one decoded input line or the error that ended the input.
type message struct {
	req Request
	err error
}

// Server answers check requests read from an input stream.
type Server struct {
	core     *scanner.Core
	encoder  *json.Encoder
	decoder  *json.Decoder
	handlers map[string]handlerFunc
}

// NewServer creates a server reading requests from in and writing responses
// to out.
func NewServer(core *scanner.Core, in io.Reader, out io.Writer) *Server {
	s := &Server{
		core:    core,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
	s.handlers = map[string]handlerFunc{
		TypeCheck:      s.handleCheck,
		TypeCheckBatch: s.handleCheckBatch,
		TypeCheckFile:  s.handleCheckFile,
		TypeRules:      s.handleRules,
	}
	return s
}

// Run sends a ready message and then answers requests in order until the
// input ends, a "close" request arrives, or ctx is cancelled. ctx is passed
// to every check, so cancelling it also interrupts a long check or batch;
// that request gets an error response before Run returns ctx's error.
//
// Decoding runs in its own goroutine. If ctx is cancelled while the input is
// still open, that goroutine stays blocked in Decode until the input yields
// data or is closed by the caller.
func (s *Server) Run(ctx context.Context) error {
	if err := s.sendReady(); err != nil {
		return fmt.Errorf("sending ready: %w", err)
	}

	msgs := make(chan message)
	done := make(chan struct{})
	defer close(done)
	go s.read(msgs, done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-msgs:
			if m.err != nil {
				if errors.Is(m.err, io.EOF) {
					return nil
				}
				s.send(Response{Type: TypeDecode, Error: m.err.Error()})
				return nil
			}
			if m.req.Type == TypeClose {
				return nil
			}
			s.dispatch(ctx, m.req)
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}

// read forwards decoded requests in input order. The decode error that ends
// the input is forwarded last.
func (s *Server) read(msgs chan<- message, done <-chan struct{}) {
	for {
		var m message
		m.err = s.decoder.Decode(&m.req)
		select {
		case msgs <- m:
		case <-done:
			return
		}
		if m.err != nil {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, req Request) {
	h, ok := s.handlers[req.Type]
	if !ok {
		s.send(Response{ID: req.ID, Type: TypeUnknown, Error: "unknown request type: " + req.Type})
		return
	}

	v, err := h(ctx, req.Payload)
	if err != nil {
		s.send(Response{ID: req.ID, Type: req.Type, Error: err.Error()})
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.send(Response{ID: req.ID, Type: req.Type, Error: err.Error()})
		return
	}
	s.send(Response{ID: req.ID, Success: true, Type: req.Type, Data: data})
}

func (s *Server) sendReady() error {
	requests := make([]string, 0, len(s.handlers)+1)
	for t := range s.handlers {
		requests = append(requests, t)
	}
	requests = append(requests, TypeClose)
	sort.Strings(requests)

	data, err := json.Marshal(ReadyData{Version: Version, Requests: requests})
	if err != nil {
		return err
	}
	return s.encoder.Encode(Response{Success: true, Type: TypeReady, Data: data})
}

func (s *Server) send(resp Response) {
	// A failed write means the client is gone; the next read will end Run.
	_ = s.encoder.Encode(resp)
}

func (s *Server) handleCheck(ctx context.Context, payload json.RawMessage) (any, error) {
	var p CheckPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	return s.core.Check(ctx, p.Content, p.Source)
}

func (s *Server) handleCheckBatch(ctx context.Context, payload json.RawMessage) (any, error) {
	var p CheckBatchPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	return s.core.CheckBatch(ctx, p.Items)
}

func (s *Server) handleCheckFile(ctx context.Context, payload json.RawMessage) (any, error) {
	var p CheckFilePayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return nil, errors.New("path is required")
	}
	return s.core.CheckFile(ctx, p.Path)
}

func (s *Server) handleRules(context.Context, json.RawMessage) (any, error) {
	return scanner.Rules(), nil
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return errors.New("payload is required")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
