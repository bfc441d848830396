// Package connmgr owns the lifecycle of one connection per remote host: it
// opens the transport, starts tmux control mode, routes parsed messages to
// the registry and pane emulators, and exposes a level-triggered
// change-notification channel to the snapshot layer.
package connmgr

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/crypto/ssh"

	"github.com/regenrek/itmux/internal/clipboard"
	"github.com/regenrek/itmux/internal/hoststore"
	"github.com/regenrek/itmux/internal/keystore"
	"github.com/regenrek/itmux/internal/logging"
	"github.com/regenrek/itmux/internal/registry"
	"github.com/regenrek/itmux/internal/runenv"
	"github.com/regenrek/itmux/internal/transport"
)

// Manager is the process-wide collection of host profiles and, for each, at
// most one connection record.
type Manager struct {
	mu sync.Mutex

	hosts  *hoststore.Store
	keys   *keystore.Store
	dialer transport.Dialer
	clip   clipboard.Sink

	conns map[string]*connection

	changes chan struct{}
}

// New builds a Manager over persisted host/key stores and a transport
// dialer. clip may be nil, in which case %pane-set-clipboard payloads are
// dropped.
func New(hosts *hoststore.Store, keys *keystore.Store, dialer transport.Dialer, clip clipboard.Sink) *Manager {
	return &Manager{
		hosts:   hosts,
		keys:    keys,
		dialer:  dialer,
		clip:    clip,
		conns:   make(map[string]*connection),
		changes: make(chan struct{}, 1),
	}
}

// Changes returns the level-triggered change-notification channel: a
// receive succeeds after any registry or pane mutation across any
// connection. Consumers should re-read whatever snapshot they care about
// and not assume one signal corresponds to one mutation.
func (m *Manager) Changes() <-chan struct{} { return m.changes }

func (m *Manager) signalChange() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// AddHost persists a new host profile.
func (m *Manager) AddHost(p hoststore.Profile) (hoststore.Profile, error) {
	return m.hosts.Add(p)
}

// UpdateHost overwrites an existing host profile's mutable fields.
func (m *Manager) UpdateHost(p hoststore.Profile) error {
	return m.hosts.Update(p)
}

// RemoveHost disconnects hostID if live, then deletes its profile.
func (m *Manager) RemoveHost(id string) error {
	_ = m.Disconnect(id)
	return m.hosts.Remove(id)
}

// ConnectionView returns a snapshot of hostID's connection record, or the
// zero-value Idle view if there is no live connection.
func (m *Manager) ConnectionView(hostID string) ConnectionView {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.conns[hostID]
	if !ok {
		return ConnectionView{HostID: hostID, Phase: Idle}
	}
	return conn.view()
}

// Registry returns the live registry for hostID, or false if there is no
// connection record (including one that failed before ever registering).
func (m *Manager) Registry(hostID string) (*registry.Registry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.conns[hostID]
	if !ok {
		return nil, false
	}
	return conn.reg, true
}

// Connect opens the transport to hostID, authenticates, starts
// `tmux -CC new-session -A -s sessionName`, and spawns the ingest task.
// It blocks until the connection reaches Connected or fails.
func (m *Manager) Connect(ctx context.Context, hostID, sessionName string) error {
	profile, ok, err := m.hosts.Get(hostID)
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrHostUnknown, hostID)
	}
	if sessionName == "" {
		sessionName = profile.SessionName
	}

	cred, err := m.resolveCredential(profile)
	if err != nil {
		return err
	}

	conn := newConnection(hostID)
	m.mu.Lock()
	m.conns[hostID] = conn
	m.mu.Unlock()

	conn.setPhase(Connecting)
	ctx, cancel := context.WithTimeout(ctx, runenv.ConnectTimeout())
	defer cancel()

	session, err := m.dialer.Open(ctx, profile.Hostname, profile.Port)
	if err != nil {
		conn.setError(newError(ErrTransportError, err.Error()))
		return conn.lastError
	}

	conn.setPhase(Authenticating)
	if err := session.Authenticate(ctx, cred); err != nil {
		conn.setError(newError(ErrAuthError, err.Error()))
		return conn.lastError
	}

	conn.setPhase(StartingTmux)
	channel, err := session.OpenChannel(ctx)
	if err != nil {
		conn.setError(newError(ErrTransportError, err.Error()))
		return conn.lastError
	}
	if err := channel.Exec(ctx, NewSessionCommandLine(sessionName)); err != nil {
		conn.setError(newError(ErrTransportError, err.Error()))
		return conn.lastError
	}
	conn.channel = channel

	ingestCtx, ingestCancel := context.WithCancel(context.Background())
	conn.cancel = ingestCancel
	conn.done = make(chan struct{})
	connected := make(chan struct{})
	go m.ingest(ingestCtx, conn, connected)

	select {
	case <-connected:
		_ = m.hosts.TouchLastConnected(hostID)
		return nil
	case <-ctx.Done():
		conn.setError(newError(ErrTimeout, "tmux control mode did not become ready in time"))
		m.Disconnect(hostID)
		return conn.lastError
	case <-conn.done:
		if conn.lastError != nil {
			return conn.lastError
		}
		return newError(ErrTransportError, "connection closed before becoming ready")
	}
}

// Send writes raw bytes (keystrokes) to hostID's channel. Only legal while
// Connected.
func (m *Manager) Send(hostID string, data []byte) error {
	conn, err := m.connectedConn(hostID)
	if err != nil {
		return err
	}
	if _, err := conn.channel.Write(data); err != nil {
		return newError(ErrTransportError, err.Error())
	}
	return nil
}

// SendCommand renders cmd and appends it to hostID's channel as a
// newline-terminated line.
func (m *Manager) SendCommand(hostID string, cmd Command) error {
	return m.Send(hostID, []byte(cmd.Render()+"\n"))
}

func (m *Manager) connectedConn(hostID string) (*connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.conns[hostID]
	if !ok {
		return nil, newError(ErrHostUnknown, hostID)
	}
	if conn.phase != Connected {
		return nil, newError(ErrNotConnected, conn.phase.String())
	}
	return conn, nil
}

// Disconnect cancels the ingest task, closes the transport, and discards
// the registry. Idempotent: disconnecting a host with no live connection,
// or one already Closed, is a no-op.
func (m *Manager) Disconnect(hostID string) error {
	m.mu.Lock()
	conn, ok := m.conns[hostID]
	m.mu.Unlock()
	if !ok || conn.phase == Closed {
		return nil
	}
	if conn.cancel != nil {
		conn.cancel()
	}
	if conn.done != nil {
		<-conn.done
	}
	if conn.channel != nil {
		_ = conn.channel.Close()
	}
	conn.setPhase(Closed)
	m.mu.Lock()
	conn.reg = registry.New()
	m.mu.Unlock()
	m.signalChange()
	return nil
}

func (m *Manager) resolveCredential(profile hoststore.Profile) (transport.Credential, error) {
	if profile.CredentialID == "" {
		return transport.Credential{Kind: transport.CredentialPassword, Username: profile.Username}, nil
	}
	rec, err := m.keys.Get(profile.CredentialID)
	if err != nil {
		return transport.Credential{}, newError(ErrKeyUnavailable, err.Error())
	}
	switch profile.AuthKind {
	case hoststore.AuthPrivateKey:
		if _, err := ssh.ParsePrivateKey(rec.Blob); err != nil {
			var missing *ssh.PassphraseMissingError
			if !errors.As(err, &missing) {
				return transport.Credential{}, newError(ErrKeyUnavailable, "stored credential is not a valid private key")
			}
		}
		return transport.Credential{Kind: transport.CredentialPrivateKey, Username: profile.Username, PEMBlock: rec.Blob}, nil
	default:
		return transport.Credential{Kind: transport.CredentialPassword, Username: profile.Username, Password: string(rec.Blob)}, nil
	}
}

func logUnknownMessage(hostID, raw string) {
	slog.Debug("connmgr: unrecognized control-mode line", "host", hostID, logging.PayloadAttr("raw", []byte(raw)))
}
