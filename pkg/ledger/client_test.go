package ledger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuggestedParams() types.SuggestedParams {
	genesisHash := bytes.Repeat([]byte{0x42}, 32)
	return types.SuggestedParams{
		Fee:             1000,
		FlatFee:         true,
		MinFee:          1000,
		GenesisID:       "testnet-v1.0",
		GenesisHash:     genesisHash,
		FirstRoundValid: 1000,
		LastRoundValid:  2000,
	}
}

func TestBuildNoteTransactionIsZeroValueSelfPayment(t *testing.T) {
	signer := GenerateSigner()
	client := &algodClient{signer: signer}

	note := []byte(`{"type":"DOC","documentId":"doc-1"}`)
	txn, err := client.BuildNoteTransaction(note, testSuggestedParams())
	require.NoError(t, err)

	assert.Equal(t, types.PaymentTx, txn.Type)
	assert.Equal(t, signer.Address(), txn.Sender.String())
	assert.Equal(t, signer.Address(), txn.Receiver.String())
	assert.Equal(t, types.MicroAlgos(0), txn.Amount)
	assert.Equal(t, note, txn.Note)
}

func TestBuildNoteTransactionRejectsBadNotes(t *testing.T) {
	client := &algodClient{signer: GenerateSigner()}

	_, err := client.BuildNoteTransaction(nil, testSuggestedParams())
	assert.Error(t, err)

	_, err = client.BuildNoteTransaction(bytes.Repeat([]byte{'x'}, MaxNoteSize+1), testSuggestedParams())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cap")
}

func TestIsAccountMissing(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"not found body", errors.New("HTTP 404: no accounts found for address"), true},
		{"does not exist", errors.New("account does not exist"), true},
		{"network failure", errors.New("dial tcp: connection refused"), false},
		{"unauthorized", errors.New("HTTP 401: invalid API token"), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isAccountMissing(tc.err))
		})
	}
}

func TestAddressReturnsSignerAddress(t *testing.T) {
	signer := GenerateSigner()
	client := &algodClient{signer: signer}
	assert.Equal(t, signer.Address(), client.Address())
}
