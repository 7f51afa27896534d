package ledger

import (
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignerFromMnemonic(t *testing.T) {
	// Round-trip a generated key through its mnemonic so the test never
	// embeds real key material.
	generated := GenerateSigner()
	words, err := mnemonic.FromPrivateKey(generated.account.PrivateKey)
	require.NoError(t, err)

	signer, err := NewSignerFromMnemonic(words)
	require.NoError(t, err)
	assert.Equal(t, generated.Address(), signer.Address())
	assert.Len(t, signer.Address(), 58)
}

func TestNewSignerFromMnemonicRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		words string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"wrong word count", "abandon ability able"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSignerFromMnemonic(tc.words)
			assert.Error(t, err)
		})
	}
}

func TestSignerSignsDeterministicTxID(t *testing.T) {
	signer := GenerateSigner()

	client := &algodClient{signer: signer}
	params := testSuggestedParams()
	txn, err := client.BuildNoteTransaction([]byte(`{"type":"DOC"}`), params)
	require.NoError(t, err)

	txid1, raw1, err := signer.SignTransaction(txn)
	require.NoError(t, err)
	txid2, raw2, err := signer.SignTransaction(txn)
	require.NoError(t, err)

	assert.Equal(t, txid1, txid2)
	assert.Equal(t, raw1, raw2)
	assert.NotEmpty(t, txid1)
}
