package ledger

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const defaultNodePort = "4001"

// normalizeNodeAddress turns the configured node address into the URL the
// algod client expects. Accepts all of these:
//
//	https://node.testnet.example.io          → https://node.testnet.example.io
//	http://localhost:4001                    → http://localhost:4001
//	localhost                                → http://localhost:4001
//	node.example.io:8080                     → http://node.example.io:8080
func normalizeNodeAddress(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", fmt.Errorf("node address is empty")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parse node address %q: %w", raw, err)
		}
		switch u.Scheme {
		case "http", "https":
		default:
			return "", fmt.Errorf("unsupported scheme %q in node address %q", u.Scheme, raw)
		}
		if u.Hostname() == "" {
			return "", fmt.Errorf("node address %q has no host", raw)
		}
		return u.Scheme + "://" + u.Host, nil
	}

	// No scheme: plain host[:port], default to the local-node port.
	if _, _, err := net.SplitHostPort(raw); err != nil {
		raw = net.JoinHostPort(raw, defaultNodePort)
	}
	return "http://" + raw, nil
}
