// Package tlsboot builds the mutually-authenticated TLS configurations used
// by the server acceptor and client connector from already-loaded PEM
// bytes. No third-party TLS library appears anywhere in the retrieved
// reference pack, so this package is built directly on crypto/tls and
// crypto/x509 — the idiomatic choice absent a pack-provided alternative.
package tlsboot

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
)

// NewServerTLSConfig builds a *tls.Config requiring and verifying client
// certificates, mirroring the original's create_tls_acceptor: the server
// presents serverCert/serverKey and trusts clientRootCert to verify
// whatever certificate the connecting client presents.
func NewServerTLSConfig(serverCert, serverKey, clientRootCert []byte) (*tls.Config, error) {
	cert, err := tls.X509KeyPair(serverCert, serverKey)
	if err != nil {
		return nil, fmt.Errorf("tlsboot: parse server keypair: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(clientRootCert) {
		return nil, fmt.Errorf("tlsboot: no certificates found in client root PEM")
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// NewClientTLSConfig builds a *tls.Config presenting the client's own
// certificate and trusting serverRootCert to verify the server, mirroring
// create_tls_connector. serverName should be the server's IP address: the
// deployment uses IP SANs, not DNS names.
func NewClientTLSConfig(clientCert, clientKey, serverRootCert []byte, serverName string) (*tls.Config, error) {
	cert, err := tls.X509KeyPair(clientCert, clientKey)
	if err != nil {
		return nil, fmt.Errorf("tlsboot: parse client keypair: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(serverRootCert) {
		return nil, fmt.Errorf("tlsboot: no certificates found in server root PEM")
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		ServerName:   serverName,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
