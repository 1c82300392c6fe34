package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/genstream"
	"github.com/fwojciec/genstream/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Stream(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StreamFn", func(t *testing.T) {
		t.Parallel()
		var s mock.Stream
		p := mock.Provider{
			StreamFn: func(ctx context.Context, req genstream.Request) (genstream.Stream, error) {
				return &s, nil
			},
		}
		got, err := p.Stream(context.Background(), genstream.Request{})
		require.NoError(t, err)
		assert.Equal(t, &s, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		p := mock.Provider{
			StreamFn: func(ctx context.Context, req genstream.Request) (genstream.Stream, error) {
				return nil, wantErr
			},
		}
		_, err := p.Stream(context.Background(), genstream.Request{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when StreamFn not set", func(t *testing.T) {
		t.Parallel()
		p := mock.Provider{}
		assert.Panics(t, func() {
			_, _ = p.Stream(context.Background(), genstream.Request{})
		})
	})
}

func TestProvider_Generate(t *testing.T) {
	t.Parallel()
	want := genstream.Enhance(genstream.Response{ModelVersion: "m"}, nil)
	p := mock.Provider{
		GenerateFn: func(ctx context.Context, req genstream.Request) (*genstream.EnhancedResponse, error) {
			return want, nil
		},
	}
	got, err := p.Generate(context.Background(), genstream.Request{})
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestStream_Next(t *testing.T) {
	t.Parallel()
	t.Run("delegates to NextFn", func(t *testing.T) {
		t.Parallel()
		want := genstream.Enhance(genstream.Response{ResponseID: "r1"}, nil)
		s := mock.Stream{
			NextFn: func() (*genstream.EnhancedResponse, error) {
				return want, nil
			},
		}
		got, err := s.Next()
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("returns EOF", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{
			NextFn: func() (*genstream.EnhancedResponse, error) {
				return nil, io.EOF
			},
		}
		_, err := s.Next()
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestStream_State(t *testing.T) {
	t.Parallel()
	t.Run("zero value when StateFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Equal(t, genstream.StreamStateNew, s.State())
	})

	t.Run("delegates to StateFn", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{
			StateFn: func() genstream.StreamState { return genstream.StreamStateComplete },
		}
		assert.Equal(t, genstream.StreamStateComplete, s.State())
	})
}

func TestStream_Response(t *testing.T) {
	t.Parallel()
	t.Run("panics when ResponseFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Panics(t, func() {
			_, _ = s.Response()
		})
	})
}

func TestStream_Close(t *testing.T) {
	t.Parallel()
	t.Run("delegates to CloseFn", func(t *testing.T) {
		t.Parallel()
		called := false
		s := mock.Stream{
			CloseFn: func() error {
				called = true
				return nil
			},
		}
		require.NoError(t, s.Close())
		assert.True(t, called)
	})

	t.Run("returns nil when CloseFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.NoError(t, s.Close())
	})
}

func TestBody(t *testing.T) {
	t.Parallel()
	t.Run("one chunk per read then EOF", func(t *testing.T) {
		t.Parallel()
		b := mock.NewBody("ab", "cde")
		buf := make([]byte, 16)

		n, err := b.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "ab", string(buf[:n]))

		n, err = b.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "cde", string(buf[:n]))

		_, err = b.Read(buf)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 3, b.Reads())
	})

	t.Run("splits a chunk larger than the buffer", func(t *testing.T) {
		t.Parallel()
		b := mock.NewBody("abcdef")
		got, err := io.ReadAll(io.LimitReader(b, 100))
		require.NoError(t, err)
		assert.Equal(t, "abcdef", string(got))
	})

	t.Run("returns Err after the last chunk", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("connection reset")
		b := mock.NewBody("x")
		b.Err = wantErr
		_, err := io.ReadAll(b)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()
		b := mock.NewBody("x")
		require.NoError(t, b.Close())
		_, err := b.Read(make([]byte, 1))
		assert.ErrorIs(t, err, io.ErrClosedPipe)
		assert.Equal(t, 1, b.Closes())
	})
}
