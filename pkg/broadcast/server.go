package broadcast

import (
	"github.com/nats-io/nats-server/v2/server"
	"github.com/pkg/errors"
)

const (
	HostDefault = "127.0.0.1"
	PortDefault = 4222

	natsMaxPayloadSize int32 = 1024 * 1024 // 1 MB
	connectionsTimeout       = 10 * server.AUTH_TIMEOUT
)

type ServerOptions struct {
	Host string
	// Port of the server, server.RANDOM_PORT picks a free one.
	Port int
}

// StartEmbeddedServer runs a NATS server inside the process and waits until it accepts
// connections. The caller shuts it down.
func StartEmbeddedServer(so ServerOptions) (*server.Server, error) {
	if so.Host == "" {
		so.Host = HostDefault
	}
	if so.Port == 0 {
		so.Port = PortDefault
	}
	opts := &server.Options{
		MaxPayload: natsMaxPayloadSize,
		Host:       so.Host,
		Port:       so.Port,
		NoSigs:     true,
		NoLog:      true,
	}
	s, err := server.NewServer(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create NATS server")
	}
	go s.Start()
	if !s.ReadyForConnections(connectionsTimeout) {
		s.Shutdown()
		return nil, errors.New("NATS server is not ready for connections")
	}
	return s, nil
}

func ShutdownServer(s *server.Server) {
	s.Shutdown()
	s.WaitForShutdown()
}
