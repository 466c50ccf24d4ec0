package transport

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/kafji/terong-relay/internal/relayerr"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	body, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "hello" {
		t.Fatalf("expected hello, got %q", body)
	}
}

func TestReadFrameZeroLengthIsNilNoError(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	body, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if body != nil {
		t.Fatalf("expected nil body for no-op frame, got %q", body)
	}
}

func TestReadFrameTruncatedHeaderErrors(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00})
	if _, err := ReadFrame(buf); err == nil || !errors.Is(err, relayerr.ErrConnRead) {
		t.Fatalf("expected ErrConnRead, got %v", err)
	}
}

func TestReadFrameTruncatedBodyErrors(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteFrame(&buf, []byte("hello"))
	truncated := bytes.NewReader(buf.Bytes()[:4])
	if _, err := ReadFrame(truncated); err == nil || !errors.Is(err, relayerr.ErrConnRead) {
		t.Fatalf("expected ErrConnRead, got %v", err)
	}
}

func TestReadNonEmptyFrameSkipsNoOpsAndCallsOnFrame(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteFrame(&buf, nil)
	_ = WriteFrame(&buf, nil)
	_ = WriteFrame(&buf, []byte("payload"))

	var calls int
	body, err := ReadNonEmptyFrame(&buf, func() { calls++ })
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "payload" {
		t.Fatalf("expected payload, got %q", body)
	}
	if calls != 3 {
		t.Fatalf("expected onFrame invoked for every frame including no-ops, got %d", calls)
	}
}

type fakeDeadliner struct {
	last time.Time
	err  error
}

func (f *fakeDeadliner) SetReadDeadline(t time.Time) error {
	f.last = t
	return f.err
}

func TestArmReadDeadlineSetsFutureDeadline(t *testing.T) {
	d := &fakeDeadliner{}
	before := time.Now()
	if err := ArmReadDeadline(d, DefaultTimeout); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if !d.last.After(before) {
		t.Fatalf("expected deadline set in the future")
	}
	if d.last.Sub(before) < DefaultTimeout-time.Second {
		t.Fatalf("expected deadline roughly timeout away, got delta %v", d.last.Sub(before))
	}
}

func TestSendIntervalIsHalfTimeout(t *testing.T) {
	if got := SendInterval(20 * time.Second); got != 10*time.Second {
		t.Fatalf("expected 10s, got %v", got)
	}
}
