package server

import (
	"context"
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

	"github.com/kafji/terong-relay/internal/inputevent"
	"github.com/kafji/terong-relay/internal/protocol"
	"github.com/kafji/terong-relay/internal/transport"
	"github.com/kafji/terong-relay/internal/wireformat"
)

func genCert(t *testing.T) (certPEM, keyPEM []byte) {
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
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create cert: %v", err)
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM
}

func testTLSConfigs(t *testing.T) (serverCfg, clientCfg *tls.Config) {
	t.Helper()
	serverCert, serverKey := genCert(t)
	clientCert, clientKey := genCert(t)

	sCert, err := tls.X509KeyPair(serverCert, serverKey)
	if err != nil {
		t.Fatal(err)
	}
	cCert, err := tls.X509KeyPair(clientCert, clientKey)
	if err != nil {
		t.Fatal(err)
	}
	clientPool := x509.NewCertPool()
	clientPool.AppendCertsFromPEM(clientCert)
	serverPool := x509.NewCertPool()
	serverPool.AppendCertsFromPEM(serverCert)

	serverCfg = &tls.Config{
		Certificates: []tls.Certificate{sCert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    clientPool,
		MinVersion:   tls.VersionTLS12,
	}
	clientCfg = &tls.Config{
		Certificates: []tls.Certificate{cCert},
		RootCAs:      serverPool,
		ServerName:   "127.0.0.1",
		MinVersion:   tls.VersionTLS12,
	}
	return serverCfg, clientCfg
}

func dialClient(t *testing.T, addr string, clientCfg *tls.Config) net.Conn {
	t.Helper()
	conn, err := tls.Dial("tcp", addr, clientCfg)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func clientSendPing(t *testing.T, conn net.Conn) {
	t.Helper()
	body := wireformat.EncodeClientMsg(protocol.NewClientPing())
	if err := transport.WriteFrame(conn, body); err != nil {
		t.Fatalf("client send ping: %v", err)
	}
}

func TestServerForwardsEventToActiveSession(t *testing.T) {
	serverCfg, clientCfg := testTLSConfigs(t)
	events := make(chan inputevent.Wire, 1)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	srv := New(addr, serverCfg, events, WithHeartbeatTimeout(2*time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	conn := dialClient(t, addr, clientCfg)
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	events <- inputevent.Wire{Kind: inputevent.KindKeyDown, Key: inputevent.A}

	body, err := transport.ReadFrame(conn)
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	msg, err := wireformat.DecodeServerMsg(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Kind != protocol.ServerEvent || msg.Event.Key != inputevent.A {
		t.Fatalf("expected forwarded KeyDown(A), got %+v", msg)
	}
}

func TestServerRejectsSecondConnectionWhileOneActive(t *testing.T) {
	serverCfg, clientCfg := testTLSConfigs(t)
	events := make(chan inputevent.Wire, 1)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	srv := New(addr, serverCfg, events, WithHeartbeatTimeout(2*time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	first := dialClient(t, addr, clientCfg)
	defer first.Close()
	time.Sleep(50 * time.Millisecond)

	second := dialClient(t, addr, clientCfg)
	defer second.Close()

	buf := make([]byte, 1)
	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = second.Read(buf)
	if err == nil {
		t.Fatal("expected the second connection to be closed immediately")
	}

	// First session must remain usable.
	clientSendPing(t, first)
}

func TestServerTerminatesSessionOnHeartbeatDeadline(t *testing.T) {
	serverCfg, clientCfg := testTLSConfigs(t)
	events := make(chan inputevent.Wire, 1)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	srv := New(addr, serverCfg, events, WithHeartbeatTimeout(200*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	conn := dialClient(t, addr, clientCfg)
	defer conn.Close()

	// Client sends nothing; the server keeps pinging on its own send
	// interval, but once recv_deadline passes with no frame received from
	// the client, it must close the connection.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var sawClose bool
	for i := 0; i < 50; i++ {
		if _, err := transport.ReadFrame(conn); err != nil {
			sawClose = true
			break
		}
	}
	if !sawClose {
		t.Fatal("expected connection to be closed after recv_deadline expiry")
	}
}
