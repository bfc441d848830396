// Package transport defines the bidirectional byte-channel contract the
// connection manager drives. The SSH implementation lives in
// internal/sshtransport; only the interfaces and the credential vocabulary
// the manager depends on live here.
package transport

import "context"

// CredentialKind tags which authentication method a Credential carries.
type CredentialKind uint8

const (
	CredentialPassword CredentialKind = iota
	CredentialPrivateKey
)

// Credential is a tagged variant: a password, or a PEM-encoded private key
// blob with an optional passphrase.
type Credential struct {
	Kind       CredentialKind
	Username   string
	Password   string
	PEMBlock   []byte
	Passphrase string
}

// Session is an authenticated connection to one remote host.
type Session interface {
	Authenticate(ctx context.Context, cred Credential) error
	OpenChannel(ctx context.Context) (Channel, error)
	Disconnect() error
}

// Channel is a single exec'd command's bidirectional byte stream, used here
// to run `tmux -CC new-session -A -s <name>` and speak its control-mode
// protocol for the lifetime of the connection.
type Channel interface {
	Exec(ctx context.Context, commandLine string) error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Dialer opens a Session to a host. Implementations wrap a concrete
// transport (e.g. golang.org/x/crypto/ssh); the manager only depends on
// this interface.
type Dialer interface {
	Open(ctx context.Context, host string, port int) (Session, error)
}
