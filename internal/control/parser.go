package control

import (
	"encoding/base64"
	"strings"
)

// Parse decodes one control-mode line (without its trailing LF/CR) into a
// typed Message. Lines not beginning with '%' are tmux's dialog with
// itself and are discarded by the caller, not passed here. Malformed
// records never fail: they become KindUnknown.
func Parse(line string) Message {
	if !strings.HasPrefix(line, "%") {
		return Message{Kind: KindUnknown, Raw: line}
	}

	cmd, rest, _ := cutToken(line[1:])

	switch cmd {
	case "output":
		paneID, payload, ok := cutToken(rest)
		if !ok {
			break
		}
		return Message{Kind: KindOutput, Raw: line, PaneID: paneID, Payload: decodeOutputPayload(payload)}

	case "layout-change":
		windowID, layout, ok := cutToken(rest)
		if !ok {
			break
		}
		return Message{Kind: KindLayoutChange, Raw: line, WindowID: windowID, LayoutDescriptor: layout}

	case "window-add":
		windowID, name, ok := cutToken(rest)
		if !ok {
			break
		}
		return Message{Kind: KindWindowAdd, Raw: line, WindowID: windowID, WindowName: name}

	case "window-close":
		windowID := strings.TrimSpace(rest)
		if windowID == "" {
			break
		}
		return Message{Kind: KindWindowClose, Raw: line, WindowID: windowID}

	case "window-renamed":
		windowID, name, ok := cutToken(rest)
		if !ok {
			break
		}
		return Message{Kind: KindWindowRenamed, Raw: line, WindowID: windowID, WindowName: name}

	case "session-changed":
		sessionID, name, ok := cutToken(rest)
		if !ok {
			break
		}
		return Message{Kind: KindSessionChanged, Raw: line, SessionID: sessionID, SessionName: name}

	case "session-closed":
		sessionID := strings.TrimSpace(rest)
		if sessionID == "" {
			break
		}
		return Message{Kind: KindSessionClosed, Raw: line, SessionID: sessionID}

	case "pane-mode-changed":
		paneID, mode, ok := cutToken(rest)
		if !ok {
			break
		}
		return Message{Kind: KindPaneMode, Raw: line, PaneID: paneID, ModeName: mode}

	case "pane-focus-in":
		paneID := strings.TrimSpace(rest)
		if paneID == "" {
			break
		}
		return Message{Kind: KindPaneFocusIn, Raw: line, PaneID: paneID}

	case "pane-focus-out":
		paneID := strings.TrimSpace(rest)
		if paneID == "" {
			break
		}
		return Message{Kind: KindPaneFocusOut, Raw: line, PaneID: paneID}

	case "pane-set-clipboard":
		paneID, b64, ok := cutToken(rest)
		if !ok {
			break
		}
		msg := Message{Kind: KindPaneSetClipboard, Raw: line, PaneID: paneID}
		if b64 != "" {
			if decoded, err := base64.StdEncoding.DecodeString(b64); err == nil {
				msg.Payload = decoded
				msg.PayloadPresent = true
			}
		}
		return msg

	case "exit":
		return Message{Kind: KindExit, Raw: line, Reason: strings.TrimSpace(rest)}

	case "feature-change":
		return Message{Kind: KindFeatures, Raw: line}

	case "subscription-changed":
		return Message{Kind: KindSubscriptions, Raw: line}
	}

	return Message{Kind: KindUnknown, Raw: line}
}

// cutToken splits rest into its first space-delimited token and the
// remaining tail, trimmed of leading space. ok is false only when rest is
// empty (the token is mandatory).
func cutToken(rest string) (token, tail string, ok bool) {
	rest = strings.TrimLeft(rest, " ")
	if rest == "" {
		return "", "", false
	}
	idx := strings.IndexByte(rest, ' ')
	if idx < 0 {
		return rest, "", true
	}
	return rest[:idx], strings.TrimLeft(rest[idx+1:], " "), true
}
