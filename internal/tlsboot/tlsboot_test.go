package tlsboot

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"testing"
	"time"
)

// genCert creates a self-signed leaf certificate and PEM-encodes it
// alongside its private key, mirroring the test fixtures in the original
// Rust tls.rs tests (rcgen-generated self-signed IP-SAN certificates).
func genCert(t *testing.T, ip net.IP) (certPEM, keyPEM []byte) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{Organization: []string{"Example"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		IsCA:         true,
		IPAddresses:  []net.IP{ip},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM
}

func TestMutualHandshakeWithValidCertsSucceeds(t *testing.T) {
	loopback := net.ParseIP("127.0.0.1")
	serverCert, serverKey := genCert(t, loopback)
	clientCert, clientKey := genCert(t, loopback)

	serverCfg, err := NewServerTLSConfig(serverCert, serverKey, clientCert)
	if err != nil {
		t.Fatalf("server config: %v", err)
	}
	clientCfg, err := NewClientTLSConfig(clientCert, clientKey, serverCert, "127.0.0.1")
	if err != nil {
		t.Fatalf("client config: %v", err)
	}

	ln, err := tls.Listen("tcp", "127.0.0.1:0", serverCfg)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	done := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			done <- err
			return
		}
		defer conn.Close()
		buf := make([]byte, 5)
		_, err = conn.Read(buf)
		done <- err
	}()

	conn, err := tls.Dial("tcp", ln.Addr().String(), clientCfg)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("server read: %v", err)
	}
}

func TestServerRejectsClientWithUntrustedCert(t *testing.T) {
	loopback := net.ParseIP("127.0.0.1")
	serverCert, serverKey := genCert(t, loopback)
	trustedClientCert, _ := genCert(t, loopback)
	untrustedClientCert, untrustedClientKey := genCert(t, loopback)

	serverCfg, err := NewServerTLSConfig(serverCert, serverKey, trustedClientCert)
	if err != nil {
		t.Fatalf("server config: %v", err)
	}
	clientCfg, err := NewClientTLSConfig(untrustedClientCert, untrustedClientKey, serverCert, "127.0.0.1")
	if err != nil {
		t.Fatalf("client config: %v", err)
	}

	ln, err := tls.Listen("tcp", "127.0.0.1:0", serverCfg)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			_ = conn.Close()
		}
	}()

	_, err = tls.Dial("tcp", ln.Addr().String(), clientCfg)
	if err == nil {
		t.Fatal("expected handshake failure for untrusted client certificate")
	}
}

func TestNewServerTLSConfigRejectsBadPEM(t *testing.T) {
	if _, err := NewServerTLSConfig([]byte("not a cert"), []byte("not a key"), []byte("not a root")); err == nil {
		t.Fatal("expected error for malformed PEM input")
	}
}
