package gemini

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/genstream"
	"github.com/fwojciec/genstream/sse"
	"github.com/fwojciec/genstream/tee"
)

// StreamOption configures a stream built by [NewStream].
type StreamOption func(*streamConfig)

type streamConfig struct {
	logger     genstream.Logger
	maxBacklog int
}

// WithStreamLogger sets the logger handed to every EnhancedResponse the
// stream produces.
func WithStreamLogger(l genstream.Logger) StreamOption {
	return func(c *streamConfig) { c.logger = l }
}

// WithStreamMaxBacklog bounds the number of records buffered for the branch
// that is behind. See [tee.WithMaxBacklog].
func WithStreamMaxBacklog(n int) StreamOption {
	return func(c *streamConfig) { c.maxBacklog = n }
}

// NewStream returns a Stream over a framed response body. It does not read
// from body; reading starts with the first call to Next or Response.
//
// Every record is delivered to both the live sequence and the aggregation.
// Records the live sequence has read are kept for Response until Response
// consumes them, and records Response has read are kept for Next until Next
// returns them. A caller that only iterates should not be concerned: the
// aggregation branch is released by Close. A caller that never closes a
// long stream and never calls Response should bound the buffer with
// WithStreamMaxBacklog.
//
// body is closed once the stream ends, with or without an error, and by
// Close unless Response is still consuming it.
func NewStream(body io.ReadCloser, opts ...StreamOption) genstream.Stream {
	cfg := streamConfig{logger: genstream.NopLogger{}}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = genstream.NopLogger{}
	}

	s := &stream{
		body:   body,
		logger: cfg.logger,
		state:  genstream.StreamStateNew,
	}
	src := &source{r: sse.NewReader(body), done: func() { _ = s.closeBody() }}
	var teeOpts []tee.Option
	if cfg.maxBacklog > 0 {
		teeOpts = append(teeOpts, tee.WithMaxBacklog(cfg.maxBacklog))
	}
	s.live, s.agg = tee.New[genstream.Response](src, teeOpts...)
	return s
}

// source closes the body as soon as the reader hits a terminal error.
type source struct {
	r    *sse.Reader
	done func()
}

func (s *source) Next() (genstream.Response, error) {
	resp, err := s.r.Next()
	if err != nil {
		s.done()
	}
	return resp, err
}

type stream struct {
	body      io.ReadCloser
	closeOnce sync.Once
	logger    genstream.Logger

	live *tee.Branch[genstream.Response]
	agg  *tee.Branch[genstream.Response]

	// Owned by the goroutine calling Next.
	state genstream.StreamState
	err   error

	mu         sync.Mutex
	aggStarted bool
	aggClosed  bool

	respOnce sync.Once
	resp     *genstream.EnhancedResponse
	respErr  error
}

func (s *stream) Next() (*genstream.EnhancedResponse, error) {
	switch s.state {
	case genstream.StreamStateComplete:
		return nil, io.EOF
	case genstream.StreamStateError:
		return nil, s.err
	case genstream.StreamStateClosed:
		return nil, genstream.ErrStreamClosed
	}

	r, err := s.live.Next()
	if errors.Is(err, io.EOF) {
		s.state = genstream.StreamStateComplete
		return nil, io.EOF
	}
	if err != nil {
		s.state = genstream.StreamStateError
		s.err = err
		s.logger.Error(err)
		return nil, err
	}
	s.state = genstream.StreamStateStreaming
	return genstream.Enhance(r, s.logger), nil
}

func (s *stream) State() genstream.StreamState {
	return s.state
}

// Response drains the aggregation branch on first call and memoizes the
// result. Concurrent callers wait for the first one.
func (s *stream) Response() (*genstream.EnhancedResponse, error) {
	s.respOnce.Do(func() {
		s.mu.Lock()
		if s.aggClosed {
			s.mu.Unlock()
			s.respErr = genstream.ErrStreamClosed
			return
		}
		s.aggStarted = true
		s.mu.Unlock()

		var a genstream.Aggregator
		n := 0
		for {
			r, err := s.agg.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				s.respErr = err
				return
			}
			a.Add(r)
			n++
		}
		s.resp = genstream.Enhance(a.Response(), s.logger)
		s.logger.Debug(fmt.Sprintf("gemini: aggregated %d records", n))
	})
	return s.resp, s.respErr
}

// Close stops the live sequence. If Response has not been called, the
// aggregation is abandoned too and the body is closed; otherwise Response
// keeps reading the body to its end.
func (s *stream) Close() error {
	if s.state != genstream.StreamStateComplete && s.state != genstream.StreamStateError {
		s.state = genstream.StreamStateClosed
	}
	_ = s.live.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aggStarted {
		return nil
	}
	s.aggClosed = true
	_ = s.agg.Close()
	return s.closeBody()
}

func (s *stream) closeBody() error {
	var err error
	s.closeOnce.Do(func() { err = s.body.Close() })
	return err
}
