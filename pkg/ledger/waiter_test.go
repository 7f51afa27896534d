package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger simulates round progression and transaction finality for
// waiter tests. Confirmation is monotonic: once a transaction reports a
// confirmed round it keeps reporting the same one.
type fakeLedger struct {
	round      uint64
	confirmAt  uint64 // tx confirms once the chain reaches this round; 0 = never
	poolError  string
	pendingErr error
	statusErr  error

	polls     int
	roundsSat int
}

func (f *fakeLedger) Address() string { return "FAKEADDRESS" }

func (f *fakeLedger) TransactionParams(context.Context) (types.SuggestedParams, error) {
	return testSuggestedParams(), nil
}

func (f *fakeLedger) BuildNoteTransaction([]byte, types.SuggestedParams) (types.Transaction, error) {
	return types.Transaction{}, nil
}

func (f *fakeLedger) Sign(types.Transaction) (string, []byte, error) {
	return "FAKETXID", []byte("raw"), nil
}

func (f *fakeLedger) Submit(context.Context, []byte) (string, error) {
	return "FAKETXID", nil
}

func (f *fakeLedger) PendingInfo(ctx context.Context, txid string) (PendingInfo, error) {
	f.polls++
	if f.pendingErr != nil {
		return PendingInfo{}, f.pendingErr
	}
	if f.poolError != "" {
		return PendingInfo{PoolError: f.poolError}, nil
	}
	if f.confirmAt > 0 && f.round >= f.confirmAt {
		return PendingInfo{ConfirmedRound: f.confirmAt}, nil
	}
	return PendingInfo{}, nil
}

func (f *fakeLedger) AccountBalance(context.Context, string) (uint64, error) { return 0, nil }

func (f *fakeLedger) CurrentRound(context.Context) (uint64, error) {
	if f.statusErr != nil {
		return 0, f.statusErr
	}
	return f.round, nil
}

func (f *fakeLedger) WaitForRoundAfter(ctx context.Context, round uint64) (uint64, error) {
	f.roundsSat++
	f.round = round + 1
	return f.round, nil
}

func TestWaitForConfirmationConfirms(t *testing.T) {
	fake := &fakeLedger{round: 100, confirmAt: 103}

	got, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 10)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Equal(t, uint64(103), got.ConfirmedRound)
	assert.Equal(t, 3, fake.roundsSat, "waiter should advance one round per poll")
}

func TestWaitForConfirmationImmediateFinality(t *testing.T) {
	fake := &fakeLedger{round: 200, confirmAt: 150}

	got, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 10)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Equal(t, uint64(150), got.ConfirmedRound)
	assert.Zero(t, fake.roundsSat)
}

func TestWaitForConfirmationIdempotentFinality(t *testing.T) {
	fake := &fakeLedger{round: 200, confirmAt: 150}

	first, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 10)
	require.NoError(t, err)
	second, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 10)
	require.NoError(t, err)

	assert.Equal(t, first.ConfirmedRound, second.ConfirmedRound)
	assert.Equal(t, StatusConfirmed, second.Status)
}

func TestWaitForConfirmationPoolError(t *testing.T) {
	fake := &fakeLedger{round: 100, poolError: "transaction dead: round range expired"}

	got, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 10)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Contains(t, got.PoolError, "expired")
}

func TestWaitForConfirmationTimesOut(t *testing.T) {
	fake := &fakeLedger{round: 100} // never confirms

	got, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 5)
	require.NoError(t, err)
	assert.Equal(t, StatusTimedOut, got.Status)
	assert.Zero(t, got.ConfirmedRound)
	assert.Equal(t, 5, fake.roundsSat)
}

func TestWaitForConfirmationDefaultsMaxRounds(t *testing.T) {
	fake := &fakeLedger{round: 100}

	got, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 0)
	require.NoError(t, err)
	assert.Equal(t, StatusTimedOut, got.Status)
	assert.Equal(t, DefaultMaxWaitRounds, fake.roundsSat)
}

func TestWaitForConfirmationHonorsCancellation(t *testing.T) {
	fake := &fakeLedger{round: 100}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := WaitForConfirmation(ctx, fake, "FAKETXID", 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusPending, got.Status)
}

func TestWaitForConfirmationPropagatesNetworkErrors(t *testing.T) {
	netErr := &NetworkError{Op: "pending transaction lookup", Err: errors.New("connection reset")}
	fake := &fakeLedger{round: 100, pendingErr: netErr}

	got, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 10)
	assert.ErrorIs(t, err, netErr)
	assert.Equal(t, StatusPending, got.Status)
}

func TestWaitForConfirmationPropagatesStatusErrors(t *testing.T) {
	statusErr := &NetworkError{Op: "node status", Err: errors.New("timeout")}
	fake := &fakeLedger{statusErr: statusErr}

	_, err := WaitForConfirmation(context.Background(), fake, "FAKETXID", 10)
	assert.ErrorIs(t, err, statusErr)
}
