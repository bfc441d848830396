package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/regenrek/itmux/internal/connmgr"
	"github.com/regenrek/itmux/internal/hoststore"
	"github.com/regenrek/itmux/internal/keystore"
	"github.com/regenrek/itmux/internal/transport"
)

type fakeChannel struct {
	lines chan []byte
	buf   []byte
}

func (c *fakeChannel) Exec(ctx context.Context, commandLine string) error { return nil }

func (c *fakeChannel) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		line, ok := <-c.lines
		if !ok {
			return 0, context.Canceled
		}
		c.buf = line
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *fakeChannel) Write(p []byte) (int, error) { return len(p), nil }
func (c *fakeChannel) Close() error                { return nil }

type fakeSession struct{ channel *fakeChannel }

func (s *fakeSession) Authenticate(ctx context.Context, cred transport.Credential) error { return nil }
func (s *fakeSession) OpenChannel(ctx context.Context) (transport.Channel, error) {
	return s.channel, nil
}
func (s *fakeSession) Disconnect() error { return nil }

type fakeDialer struct{ session *fakeSession }

func (d *fakeDialer) Open(ctx context.Context, host string, port int) (transport.Session, error) {
	return d.session, nil
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{lines: make(chan []byte, 16)}
}

func TestHostsCombinesProfileAndConnectionView(t *testing.T) {
	hosts, err := hoststore.OpenAt(filepath.Join(t.TempDir(), "hosts.db"))
	if err != nil {
		t.Fatalf("hoststore.OpenAt: %v", err)
	}
	defer hosts.Close()
	keys, err := keystore.OpenAt(filepath.Join(t.TempDir(), "keys.db"))
	if err != nil {
		t.Fatalf("keystore.OpenAt: %v", err)
	}
	defer keys.Close()

	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22})
	conns := connmgr.New(hosts, keys, &fakeDialer{}, nil)
	src := New(hosts, conns)

	views, err := src.Hosts()
	if err != nil {
		t.Fatalf("Hosts: %v", err)
	}
	if len(views) != 1 || views[0].Profile.ID != profile.ID {
		t.Fatalf("views = %+v", views)
	}
	if views[0].Connection.Phase != connmgr.Idle {
		t.Fatalf("phase = %v, want Idle", views[0].Connection.Phase)
	}
}

func TestPanesReturnsCopiesNotLiveReferences(t *testing.T) {
	hosts, err := hoststore.OpenAt(filepath.Join(t.TempDir(), "hosts.db"))
	if err != nil {
		t.Fatalf("hoststore.OpenAt: %v", err)
	}
	defer hosts.Close()
	keys, err := keystore.OpenAt(filepath.Join(t.TempDir(), "keys.db"))
	if err != nil {
		t.Fatalf("keystore.OpenAt: %v", err)
	}
	defer keys.Close()

	channel := newFakeChannel()
	dialer := &fakeDialer{session: &fakeSession{channel: channel}}
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22, SessionName: "itmux"})
	conns := connmgr.New(hosts, keys, dialer, nil)
	src := New(hosts, conns)

	errCh := make(chan error, 1)
	go func() { errCh <- conns.Connect(context.Background(), profile.ID, "itmux") }()
	channel.lines <- []byte("%session-changed $1 itmux\n")
	if err := <-errCh; err != nil {
		t.Fatalf("Connect: %v", err)
	}

	channel.lines <- []byte("%window-add @1\n")
	channel.lines <- []byte("%layout-change @1 c3b2,10x2,0,0,1\n")

	deadline := time.Now().Add(2 * time.Second)
	var panes []PaneSnapshot
	for {
		panes, err = src.Panes(profile.ID)
		if err != nil {
			t.Fatalf("Panes: %v", err)
		}
		if len(panes) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for a pane to register, got %d", len(panes))
		}
		time.Sleep(10 * time.Millisecond)
	}

	before := len(panes[0].GridRows)
	panes[0].GridRows = append(panes[0].GridRows, nil)

	again, err := src.Panes(profile.ID)
	if err != nil {
		t.Fatalf("Panes: %v", err)
	}
	if len(again[0].GridRows) != before {
		t.Fatalf("mutating a returned snapshot affected the live registry: got %d rows, want %d", len(again[0].GridRows), before)
	}
}

func TestChangesSignalsOnMutation(t *testing.T) {
	hosts, err := hoststore.OpenAt(filepath.Join(t.TempDir(), "hosts.db"))
	if err != nil {
		t.Fatalf("hoststore.OpenAt: %v", err)
	}
	defer hosts.Close()
	keys, err := keystore.OpenAt(filepath.Join(t.TempDir(), "keys.db"))
	if err != nil {
		t.Fatalf("keystore.OpenAt: %v", err)
	}
	defer keys.Close()

	channel := newFakeChannel()
	dialer := &fakeDialer{session: &fakeSession{channel: channel}}
	profile, _ := hosts.Add(hoststore.Profile{Name: "box", Hostname: "h", Port: 22, SessionName: "itmux"})
	conns := connmgr.New(hosts, keys, dialer, nil)
	src := New(hosts, conns)

	errCh := make(chan error, 1)
	go func() { errCh <- conns.Connect(context.Background(), profile.ID, "itmux") }()
	channel.lines <- []byte("%session-changed $1 itmux\n")
	if err := <-errCh; err != nil {
		t.Fatalf("Connect: %v", err)
	}

	select {
	case <-src.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change signal after connect")
	}
}
