package connmgr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/regenrek/itmux/internal/hoststore"
	"github.com/regenrek/itmux/internal/keystore"
	"github.com/regenrek/itmux/internal/transport"
	"github.com/regenrek/itmux/internal/vt"
)

// fakeChannel is an in-memory transport.Channel: writes are recorded, and
// Read drains a buffer fed by the test via push.
type fakeChannel struct {
	mu      sync.Mutex
	toRead  bytes.Buffer
	writes  [][]byte
	closed  bool
	readyCh chan struct{}
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{readyCh: make(chan struct{}, 64)}
}

func (c *fakeChannel) push(p []byte) {
	c.mu.Lock()
	c.toRead.Write(p)
	c.mu.Unlock()
	c.readyCh <- struct{}{}
}

func (c *fakeChannel) Exec(ctx context.Context, commandLine string) error { return nil }

func (c *fakeChannel) Read(p []byte) (int, error) {
	for {
		c.mu.Lock()
		if c.closed && c.toRead.Len() == 0 {
			c.mu.Unlock()
			return 0, io.EOF
		}
		if c.toRead.Len() > 0 {
			n, _ := c.toRead.Read(p)
			c.mu.Unlock()
			return n, nil
		}
		c.mu.Unlock()
		<-c.readyCh
	}
}

func (c *fakeChannel) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := append([]byte(nil), p...)
	c.writes = append(c.writes, cp)
	return len(p), nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.readyCh <- struct{}{}
	return nil
}

type fakeSession struct {
	channel *fakeChannel
	authErr error
}

func (s *fakeSession) Authenticate(ctx context.Context, cred transport.Credential) error {
	return s.authErr
}
func (s *fakeSession) OpenChannel(ctx context.Context) (transport.Channel, error) {
	return s.channel, nil
}
func (s *fakeSession) Disconnect() error { return nil }

type fakeDialer struct {
	session *fakeSession
	openErr error
}

func (d *fakeDialer) Open(ctx context.Context, host string, port int) (transport.Session, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.session, nil
}

type noopClip struct{ last []byte }

func (n *noopClip) Write(data []byte) error { n.last = data; return nil }

func newTestManager(t *testing.T, channel *fakeChannel) (*Manager, *hoststore.Store) {
	t.Helper()
	hosts, err := hoststore.OpenAt(filepath.Join(t.TempDir(), "hosts.db"))
	if err != nil {
		t.Fatalf("hoststore.OpenAt: %v", err)
	}
	t.Cleanup(func() { hosts.Close() })
	keys, err := keystore.OpenAt(filepath.Join(t.TempDir(), "keys.db"))
	if err != nil {
		t.Fatalf("keystore.OpenAt: %v", err)
	}
	t.Cleanup(func() { keys.Close() })

	dialer := &fakeDialer{session: &fakeSession{channel: channel}}
	mgr := New(hosts, keys, dialer, &noopClip{})
	return mgr, hosts
}

func TestConnectReachesConnectedOnSessionChanged(t *testing.T) {
	channel := newFakeChannel()
	mgr, hosts := newTestManager(t, channel)
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22, SessionName: "itmux"})

	errCh := make(chan error, 1)
	go func() { errCh <- mgr.Connect(context.Background(), profile.ID, "itmux") }()

	channel.push([]byte("%session-changed $1 itmux\n"))

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Connect: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Connect never returned")
	}

	view := mgr.ConnectionView(profile.ID)
	if view.Phase != Connected {
		t.Fatalf("phase = %v, want Connected", view.Phase)
	}
}

func TestConnectFailsOnAuthError(t *testing.T) {
	channel := newFakeChannel()
	mgr, hosts := newTestManager(t, channel)
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22})
	mgr.dialer = &fakeDialer{session: &fakeSession{channel: channel, authErr: errors.New("denied")}}

	err := mgr.Connect(context.Background(), profile.ID, "itmux")
	cmErr, ok := err.(*Error)
	if !ok || cmErr.Kind != ErrAuthError {
		t.Fatalf("got %v, want AuthError", err)
	}
}

func TestSendRequiresConnected(t *testing.T) {
	channel := newFakeChannel()
	mgr, hosts := newTestManager(t, channel)
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22})

	err := mgr.Send(profile.ID, []byte("hi"))
	cmErr, ok := err.(*Error)
	if !ok || cmErr.Kind != ErrNotConnected {
		t.Fatalf("got %v, want NotConnected", err)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	channel := newFakeChannel()
	mgr, hosts := newTestManager(t, channel)
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22, SessionName: "itmux"})

	errCh := make(chan error, 1)
	go func() { errCh <- mgr.Connect(context.Background(), profile.ID, "itmux") }()
	channel.push([]byte("%session-changed $1 itmux\n"))
	if err := <-errCh; err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := mgr.Disconnect(profile.ID); err != nil {
		t.Fatalf("first Disconnect: %v", err)
	}
	if err := mgr.Disconnect(profile.ID); err != nil {
		t.Fatalf("second Disconnect: %v", err)
	}
	if view := mgr.ConnectionView(profile.ID); view.Phase != Closed {
		t.Fatalf("phase = %v, want Closed", view.Phase)
	}
}

func TestRemoteExitClosesConnection(t *testing.T) {
	channel := newFakeChannel()
	mgr, hosts := newTestManager(t, channel)
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22, SessionName: "itmux"})

	errCh := make(chan error, 1)
	go func() { errCh <- mgr.Connect(context.Background(), profile.ID, "itmux") }()
	channel.push([]byte("%session-changed $1 itmux\n"))
	if err := <-errCh; err != nil {
		t.Fatalf("Connect: %v", err)
	}

	channel.push([]byte("%exit client-detached\n"))

	deadline := time.Now().Add(2 * time.Second)
	for {
		view := mgr.ConnectionView(profile.ID)
		if view.Phase == Closed {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("phase = %v, want Closed", view.Phase)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestOutputIsAppliedToPaneEmulator(t *testing.T) {
	channel := newFakeChannel()
	mgr, hosts := newTestManager(t, channel)
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22, SessionName: "itmux"})

	errCh := make(chan error, 1)
	go func() { errCh <- mgr.Connect(context.Background(), profile.ID, "itmux") }()

	channel.push([]byte("%session-changed $1 itmux\n"))
	if err := <-errCh; err != nil {
		t.Fatalf("Connect: %v", err)
	}

	channel.push([]byte("%window-add @1\n"))
	channel.push([]byte("%layout-change @1 c3b2,10x2,0,0,1\n"))
	channel.push([]byte(`%output %1 hi\040there` + "\n"))

	deadline := time.Now().Add(2 * time.Second)
	for {
		reg, ok := mgr.Registry(profile.ID)
		if ok {
			if data, ok := reg.PaneData("%1"); ok && len(data.GridRows) > 0 {
				if rowText(data.GridRows[0], 8) == "hi there" {
					return
				}
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for pane output to apply")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func rowText(row []vt.Cell, n int) string {
	var b strings.Builder
	for i := 0; i < n && i < len(row); i++ {
		g := row[i].Grapheme
		if g == "" {
			g = " "
		}
		b.WriteString(g)
	}
	return b.String()
}
