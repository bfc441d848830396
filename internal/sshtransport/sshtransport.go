// Package sshtransport implements transport.Dialer, transport.Session, and
// transport.Channel over a real SSH connection. The connection manager never
// imports this package directly; only cmd/ wires it in, so the core
// stays testable against the fakes in connmgr's tests.
package sshtransport

import (
	"context"
	"fmt"
	"io"
	"net"

	"golang.org/x/crypto/ssh"

	"github.com/regenrek/itmux/internal/transport"
)

// Dialer opens ssh.Client connections. HostKeyCallback is required; callers
// that have no pinned known_hosts entry yet should use ssh.InsecureIgnoreHostKey
// only for local testing, never in a persisted host profile.
type Dialer struct {
	HostKeyCallback ssh.HostKeyCallback
	Timeout         func() context.Context
}

// NewDialer builds a Dialer that verifies the remote host key against cb.
func NewDialer(cb ssh.HostKeyCallback) *Dialer {
	return &Dialer{HostKeyCallback: cb}
}

func (d *Dialer) Open(ctx context.Context, host string, port int) (transport.Session, error) {
	return &session{dialer: d, addr: net.JoinHostPort(host, fmt.Sprintf("%d", port))}, nil
}

// session defers the actual TCP/SSH dial until Authenticate supplies a
// credential, since transport.Session's contract separates opening from
// authenticating.
type session struct {
	dialer *Dialer
	addr   string
	client *ssh.Client
}

func (s *session) Authenticate(ctx context.Context, cred transport.Credential) error {
	auth, err := authMethod(cred)
	if err != nil {
		return err
	}
	cfg := &ssh.ClientConfig{
		User:            cred.Username,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: s.dialer.HostKeyCallback,
	}
	dialCtx := ctx
	conn, err := dialContext(dialCtx, s.addr, cfg)
	if err != nil {
		return err
	}
	s.client = conn
	return nil
}

func dialContext(ctx context.Context, addr string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(rawConn, addr, cfg)
	if err != nil {
		return nil, err
	}
	return ssh.NewClient(sshConn, chans, reqs), nil
}

func authMethod(cred transport.Credential) (ssh.AuthMethod, error) {
	switch cred.Kind {
	case transport.CredentialPrivateKey:
		var signer ssh.Signer
		var err error
		if cred.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(cred.PEMBlock, []byte(cred.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(cred.PEMBlock)
		}
		if err != nil {
			return nil, fmt.Errorf("sshtransport: parse private key: %w", err)
		}
		return ssh.PublicKeys(signer), nil
	default:
		return ssh.Password(cred.Password), nil
	}
}

func (s *session) OpenChannel(ctx context.Context) (transport.Channel, error) {
	if s.client == nil {
		return nil, fmt.Errorf("sshtransport: session not authenticated")
	}
	sess, err := s.client.NewSession()
	if err != nil {
		return nil, err
	}
	stdin, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		return nil, err
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		return nil, err
	}
	return &channel{session: sess, stdin: stdin, stdout: stdout}, nil
}

func (s *session) Disconnect() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// channel wraps one exec'd ssh.Session: tmux's control-mode protocol runs
// over its stdin/stdout for the lifetime of the connection.
type channel struct {
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  io.Reader
}

func (c *channel) Exec(ctx context.Context, commandLine string) error {
	return c.session.Start(commandLine)
}

func (c *channel) Read(p []byte) (int, error)  { return c.stdout.Read(p) }
func (c *channel) Write(p []byte) (int, error) { return c.stdin.Write(p) }

func (c *channel) Close() error {
	c.stdin.Close()
	return c.session.Close()
}
