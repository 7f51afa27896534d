package notary

import "fmt"

// Explorer formats human-facing block-explorer URLs for transactions and
// addresses. Pure formatting: no state, no I/O.
type Explorer struct {
	baseURL string
}

var explorerBases = map[string]string{
	"mainnet": "https://explorer.perawallet.app",
	"testnet": "https://testnet.explorer.perawallet.app",
	"betanet": "https://betanet.explorer.perawallet.app",
}

// NewExplorer builds an Explorer for the named network. An explicit
// baseURL overrides the per-network default; unknown networks without an
// override fall back to the testnet explorer.
func NewExplorer(network, baseURL string) Explorer {
	if baseURL == "" {
		base, ok := explorerBases[network]
		if !ok {
			base = explorerBases["testnet"]
		}
		baseURL = base
	}
	return Explorer{baseURL: trimSlash(baseURL)}
}

// TxURL returns the explorer page for a transaction id.
func (e Explorer) TxURL(txID string) string {
	return fmt.Sprintf("%s/tx/%s", e.baseURL, txID)
}

// AddressURL returns the explorer page for an account address.
func (e Explorer) AddressURL(address string) string {
	return fmt.Sprintf("%s/address/%s", e.baseURL, address)
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
