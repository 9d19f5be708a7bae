// Package server exposes the swap estimation tools over JSON-RPC 2.0 on
// stdio, a TCP listener or HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
)

var Logger zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	Logger = zerolog.New(out).With().Timestamp().Str("component", "tool-server").Logger()
}

// SetLogger allows setting a custom logger
func SetLogger(l zerolog.Logger) {
	Logger = l
}

// Transport selects how the server is reached
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportTCP   Transport = "tcp"
	TransportHTTP  Transport = "http"
)

// Server wraps a go-ethereum RPC server with the tool service registered
type Server struct {
	rpc *rpc.Server
}

// New creates a new tool server
func New(svc *ToolService) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName(Namespace, svc); err != nil {
		return nil, fmt.Errorf("failed to register tool service: %w", err)
	}
	return &Server{rpc: srv}, nil
}

// RPC returns the underlying RPC server, e.g. for rpc.DialInProc
func (s *Server) RPC() *rpc.Server {
	return s.rpc
}

// Stop closes all open connections
func (s *Server) Stop() {
	s.rpc.Stop()
}

// Serve runs the server on the given transport until ctx is cancelled or the
// transport closes.
func (s *Server) Serve(ctx context.Context, transport Transport, addr string) error {
	switch transport {
	case TransportStdio:
		return s.ServeStdio(ctx, os.Stdin, os.Stdout)
	case TransportTCP:
		return s.ServeTCP(ctx, addr)
	case TransportHTTP:
		return s.ServeHTTP(ctx, addr)
	}
	return fmt.Errorf("unknown transport %q", transport)
}

// stdioConn adapts a reader/writer pair to rpc.Conn
type stdioConn struct {
	io.Reader
	io.Writer
}

func (c stdioConn) Close() error {
	if closer, ok := c.Reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c stdioConn) SetWriteDeadline(time.Time) error { return nil }

// ServeStdio serves JSON-RPC messages read from in, writing
// responses to out. It returns when in reaches EOF or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	Logger.Info().Msg("serving tools on stdio")

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.rpc.Stop()
		case <-done:
		}
	}()

	s.rpc.ServeCodec(rpc.NewCodec(stdioConn{Reader: in, Writer: out}), 0)
	close(done)
	return nil
}

// ServeTCP accepts connections on addr, one goroutine per connection
func (s *Server) ServeTCP(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	Logger.Info().Str("addr", l.Addr().String()).Msg("serving tools on tcp")

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	err = s.rpc.ServeListener(l)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// ServeHTTP serves JSON-RPC over HTTP POST alongside health and metrics routes
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info().Str("addr", addr).Msg("serving tools on http")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
