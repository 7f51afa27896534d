package ledger

import (
	"context"

	"github.com/caretrail/docnotary/pkg/logtrace"
)

// ConfirmationStatus is the waiter's terminal (or, on error, last-seen)
// state for a submitted transaction.
type ConfirmationStatus string

const (
	StatusPending   ConfirmationStatus = "pending"
	StatusConfirmed ConfirmationStatus = "confirmed"
	StatusFailed    ConfirmationStatus = "failed"
	StatusTimedOut  ConfirmationStatus = "timed_out"
)

// DefaultMaxWaitRounds bounds how many ledger rounds WaitForConfirmation
// observes before giving up. A node that stops progressing must not hang
// the caller forever.
const DefaultMaxWaitRounds = 10

// Confirmation is the waiter's outcome for one transaction.
type Confirmation struct {
	TxID           string
	Status         ConfirmationStatus
	ConfirmedRound uint64
	PoolError      string
}

// WaitForConfirmation blocks until txid is confirmed, rejected by the pool,
// or maxRounds ledger rounds have passed without finality. Between polls it
// waits for round progression rather than sleeping on a timer, so the node
// is queried at most once per round. Cancellation via ctx is honored
// between iterations; maxRounds 0 selects DefaultMaxWaitRounds.
//
// Confirmation is idempotent on the ledger side: once a confirmed round is
// reported it never regresses, so a single observation is final.
func WaitForConfirmation(ctx context.Context, c Client, txid string, maxRounds uint64) (Confirmation, error) {
	if maxRounds == 0 {
		maxRounds = DefaultMaxWaitRounds
	}

	fields := logtrace.Fields{
		logtrace.FieldModule: logtrace.ValueLedger,
		logtrace.FieldMethod: "WaitForConfirmation",
		logtrace.FieldTxID:   txid,
	}

	round, err := c.CurrentRound(ctx)
	if err != nil {
		return Confirmation{TxID: txid, Status: StatusPending}, err
	}
	lastRound := round + maxRounds

	for {
		if err := ctx.Err(); err != nil {
			return Confirmation{TxID: txid, Status: StatusPending}, err
		}

		info, err := c.PendingInfo(ctx, txid)
		if err != nil {
			return Confirmation{TxID: txid, Status: StatusPending}, err
		}

		switch {
		case info.ConfirmedRound > 0:
			logtrace.Info(ctx, "transaction confirmed", logtrace.WithFields(fields, logtrace.Fields{
				logtrace.FieldConfirmedRound: info.ConfirmedRound,
			}))
			return Confirmation{
				TxID:           txid,
				Status:         StatusConfirmed,
				ConfirmedRound: info.ConfirmedRound,
			}, nil

		case info.PoolError != "":
			logtrace.Warn(ctx, "transaction rejected by pool", logtrace.WithFields(fields, logtrace.Fields{
				logtrace.FieldError: info.PoolError,
			}))
			return Confirmation{
				TxID:      txid,
				Status:    StatusFailed,
				PoolError: info.PoolError,
			}, nil
		}

		if round >= lastRound {
			logtrace.Warn(ctx, "gave up waiting for confirmation", logtrace.WithFields(fields, logtrace.Fields{
				logtrace.FieldRound: round,
			}))
			return Confirmation{TxID: txid, Status: StatusTimedOut}, nil
		}

		round, err = c.WaitForRoundAfter(ctx, round)
		if err != nil {
			return Confirmation{TxID: txid, Status: StatusPending}, err
		}
	}
}
