package connmgr

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Command is a typed outbound tmux command, serialized to the wire form
// documented in §4.5/§6: plain text, newline-terminated, with send-keys
// payloads single-quote wrapped and '\'' escaped for embedded quotes.
type Command struct {
	Name string
	Args []string
}

// ListSessions / ListWindows / etc. build the small fixed vocabulary of
// commands the connection manager issues on behalf of the presentation
// layer. Each returns a Command; Render produces its wire line without the
// trailing newline, and SendCommand appends it.

func ListSessionsCmd() Command { return Command{Name: "list-sessions"} }

func ListWindowsCmd(target string) Command {
	return Command{Name: "list-windows", Args: []string{"-t", target}}
}

func NewWindowCmd(sessionTarget, name string) Command {
	args := []string{"-t", sessionTarget}
	if name != "" {
		args = append(args, "-n", name)
	}
	return Command{Name: "new-window", Args: args}
}

func SelectPaneCmd(paneTarget string) Command {
	return Command{Name: "select-pane", Args: []string{"-t", paneTarget}}
}

func ResizePaneCmd(paneTarget string, cols, rows int) Command {
	return Command{Name: "resize-pane", Args: []string{"-t", paneTarget,
		"-x", fmt.Sprint(cols), "-y", fmt.Sprint(rows)}}
}

// SendKeysLiteral types payload into paneTarget as literal bytes (tmux -l),
// bypassing key-name interpretation.
func SendKeysLiteral(paneTarget, payload string) Command {
	return Command{Name: "send-keys", Args: []string{"-t", paneTarget, "-l", payload}}
}

// SendKeysInterpreted sends one or more tmux key names (e.g. "Enter",
// "C-c") rather than literal text.
func SendKeysInterpreted(paneTarget string, keys ...string) Command {
	return Command{Name: "send-keys", Args: append([]string{"-t", paneTarget}, keys...)}
}

func KillPaneCmd(paneTarget string) Command {
	return Command{Name: "kill-pane", Args: []string{"-t", paneTarget}}
}

func KillWindowCmd(windowTarget string) Command {
	return Command{Name: "kill-window", Args: []string{"-t", windowTarget}}
}

func KillSessionCmd(sessionTarget string) Command {
	return Command{Name: "kill-session", Args: []string{"-t", sessionTarget}}
}

func DetachClientCmd() Command { return Command{Name: "detach-client"} }

func RefreshClientCmd() Command { return Command{Name: "refresh-client"} }

// SetOptionCmd sets a tmux option, globally or for windowTarget when it is
// non-empty.
func SetOptionCmd(windowTarget, option, value string) Command {
	args := []string{}
	if windowTarget != "" {
		args = append(args, "-t", windowTarget)
	} else {
		args = append(args, "-g")
	}
	args = append(args, option, value)
	return Command{Name: "set-option", Args: args}
}

// Render serializes a Command into its wire form: the command name
// followed by shell-style-quoted arguments (single-quote wrapped, with `'`
// escaped as `'\''`), matching real tmux command parsing.
func (c Command) Render() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	quoted := make([]string, len(c.Args))
	for i, arg := range c.Args {
		quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return c.Name + " " + strings.Join(quoted, " ")
}

// NewSessionCommandLine builds the exec line used to start the remote
// control-mode session: `tmux -CC new-session -A -s <sessionName>`.
func NewSessionCommandLine(sessionName string) string {
	return "tmux -CC new-session -A -s " + shellquote.Join(sessionName)
}
