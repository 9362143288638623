package server

import (
	"crypto/tls"
	"fmt"
	"net"
)

// TLSListener opens listeners that terminate TLS with a certificate loaded
// from disk.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

// NewTLSListener creates a new TLSListener instance.
// The key pair is read on every Listen call, so a rotated certificate is
// picked up on the next server start.
//
// Parameters:
//   - certFileName: Path to the PEM encoded certificate
//   - privateKeyFileName: Path to the PEM encoded private key
//
// Returns a pointer to the newly created TLSListener instance.
func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen loads the key pair and opens a TLS listener.
// Connections below TLS 1.2 are refused. Both h2 and http/1.1 are offered
// over ALPN, since gRPC clients require h2 to be negotiated.
//
// Parameters:
//   - protocol: The network to listen on, usually "tcp"
//   - addr: The address to bind, e.g. ":5000"
//
// Returns the TLS listener or an error if the key pair cannot be loaded or
// the address cannot be bound.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}
	return tls.Listen(protocol, addr, tlsConfig)
}

// PlainListener opens unencrypted listeners.
type PlainListener struct{}

// NewPlainListener creates a new PlainListener instance.
// It is used when HTTPS is disabled, typically behind a TLS terminating
// proxy or in local development.
//
// Returns a pointer to the newly created PlainListener instance.
func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

// Listen opens an unencrypted listener.
//
// Parameters:
//   - protocol: The network to listen on, usually "tcp"
//   - addr: The address to bind
//
// Returns the listener or an error if the address cannot be bound.
func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
