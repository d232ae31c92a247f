package httputil

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Listen announces on the configured TCP address. Resulting listener
// is passed to Serve.
func (x *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", x.srv.Addr)
}

// Serve accepts connections on l until Shutdown. l is closed on return.
//
// Returns any error returned by internal server
// except http.ErrServerClosed.
//
// After Shutdown call, Serve has no effect and
// returned error is always nil.
func (x *Server) Serve(l net.Listener) error {
	err := x.srv.Serve(l)

	// http.ErrServerClosed is returned on server shutdown
	// so we ignore this error.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Shutdown gracefully shuts down internal HTTP server.
//
// Shutdown is called with context which expires after
// configured timeout.
//
// Once Shutdown has been called on a server, it may not be reused;
// future calls to Serve method will have no effect.
func (x *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), x.shutdownTimeout)
	defer cancel()

	return x.srv.Shutdown(ctx)
}
