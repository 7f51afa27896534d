// Package ledger wraps the algod REST API behind a narrow client used for
// document notarization: fetch transaction params, build and sign a
// zero-value self-payment carrying a note, broadcast it, and poll its
// confirmation state. It is the only package that talks to the node.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/caretrail/docnotary/pkg/logtrace"
)

// MaxNoteSize is the ledger's cap on transaction note payloads.
const MaxNoteSize = 1024

// PendingInfo is the result of one non-blocking status poll.
// ConfirmedRound is zero while the transaction is still pending; PoolError
// is non-empty when the node evicted or rejected the transaction after
// acceptance into the pool. Neither state is an error.
type PendingInfo struct {
	ConfirmedRound uint64
	PoolError      string
	Note           []byte
}

// Client is the ledger-facing surface of the notarization subsystem.
type Client interface {
	// Address returns the notarizing identity's account address.
	Address() string

	// TransactionParams fetches current fee/round parameters. Params are
	// round-specific and expire: fetch fresh ones per submission, never
	// reuse them across submissions.
	TransactionParams(ctx context.Context) (types.SuggestedParams, error)

	// BuildNoteTransaction constructs a zero-amount self-to-self payment
	// whose sole payload is note. The ledger is used purely as an
	// append-only notarized log; no value moves.
	BuildNoteTransaction(note []byte, params types.SuggestedParams) (types.Transaction, error)

	// Sign signs txn with the injected key material.
	Sign(txn types.Transaction) (txid string, raw []byte, err error)

	// Submit broadcasts a signed transaction and returns its id. Rejections
	// surface as *SubmissionError carrying the node's raw message.
	Submit(ctx context.Context, raw []byte) (string, error)

	// PendingInfo performs a single non-blocking confirmation poll.
	PendingInfo(ctx context.Context, txid string) (PendingInfo, error)

	// AccountBalance returns the spendable balance in base units. A
	// never-funded account is a valid state and yields 0, not an error.
	AccountBalance(ctx context.Context, address string) (uint64, error)

	// CurrentRound returns the node's latest round.
	CurrentRound(ctx context.Context) (uint64, error)

	// WaitForRoundAfter blocks until the ledger advances past round and
	// returns the node's new latest round.
	WaitForRoundAfter(ctx context.Context, round uint64) (uint64, error)
}

// Config collects the client's construction parameters.
type Config struct {
	NodeAddress string
	APIToken    string
	Signer      *Signer
}

// Option mutates the client configuration.
type Option func(*Config)

func WithNodeAddress(addr string) Option { return func(c *Config) { c.NodeAddress = addr } }
func WithAPIToken(token string) Option   { return func(c *Config) { c.APIToken = token } }
func WithSigner(s *Signer) Option        { return func(c *Config) { c.Signer = s } }

type algodClient struct {
	algod  *algod.Client
	signer *Signer
}

// New constructs a ledger client and verifies the node is reachable.
// There is no ambient global instance: whoever needs ledger access owns
// a client built here.
func New(ctx context.Context, opts ...Option) (Client, error) {
	cfg := &Config{NodeAddress: "localhost"}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Signer == nil {
		return nil, fmt.Errorf("signer is required")
	}

	nodeURL, err := normalizeNodeAddress(cfg.NodeAddress)
	if err != nil {
		return nil, err
	}

	ac, err := algod.MakeClient(nodeURL, cfg.APIToken)
	if err != nil {
		return nil, fmt.Errorf("create algod client for %s: %w", nodeURL, err)
	}

	c := &algodClient{algod: ac, signer: cfg.Signer}

	// Preflight: confirm the node answers before handing the client out.
	round, err := c.CurrentRound(ctx)
	if err != nil {
		return nil, err
	}
	logtrace.Info(ctx, "connected to ledger node", logtrace.Fields{
		logtrace.FieldModule:  logtrace.ValueLedger,
		logtrace.FieldRound:   round,
		logtrace.FieldAddress: cfg.Signer.Address(),
	})
	return c, nil
}

func (c *algodClient) Address() string {
	return c.signer.Address()
}

func (c *algodClient) TransactionParams(ctx context.Context) (types.SuggestedParams, error) {
	params, err := c.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return types.SuggestedParams{}, &NetworkError{Op: "transaction params", Err: err}
	}
	return params, nil
}

func (c *algodClient) BuildNoteTransaction(note []byte, params types.SuggestedParams) (types.Transaction, error) {
	if len(note) == 0 {
		return types.Transaction{}, fmt.Errorf("note is empty")
	}
	if len(note) > MaxNoteSize {
		return types.Transaction{}, fmt.Errorf("note is %d bytes, ledger cap is %d", len(note), MaxNoteSize)
	}

	addr := c.signer.Address()
	txn, err := transaction.MakePaymentTxn(addr, addr, 0, note, "", params)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("build note transaction: %w", err)
	}
	return txn, nil
}

func (c *algodClient) Sign(txn types.Transaction) (string, []byte, error) {
	txid, raw, err := c.signer.SignTransaction(txn)
	if err != nil {
		return "", nil, fmt.Errorf("sign transaction: %w", err)
	}
	return txid, raw, nil
}

func (c *algodClient) Submit(ctx context.Context, raw []byte) (string, error) {
	txid, err := c.algod.SendRawTransaction(raw).Do(ctx)
	if err != nil {
		return "", &SubmissionError{NodeMessage: err.Error(), Err: err}
	}
	return txid, nil
}

func (c *algodClient) PendingInfo(ctx context.Context, txid string) (PendingInfo, error) {
	info, stxn, err := c.algod.PendingTransactionInformation(txid).Do(ctx)
	if err != nil {
		return PendingInfo{}, &NetworkError{Op: "pending transaction lookup", Err: err}
	}
	return PendingInfo{
		ConfirmedRound: info.ConfirmedRound,
		PoolError:      info.PoolError,
		Note:           stxn.Txn.Note,
	}, nil
}

func (c *algodClient) AccountBalance(ctx context.Context, address string) (uint64, error) {
	if address == "" {
		return 0, fmt.Errorf("address cannot be empty")
	}
	account, err := c.algod.AccountInformation(address).Do(ctx)
	if err != nil {
		if isAccountMissing(err) {
			return 0, nil
		}
		return 0, &NetworkError{Op: "account lookup", Err: err}
	}
	return account.Amount, nil
}

func (c *algodClient) CurrentRound(ctx context.Context) (uint64, error) {
	status, err := c.algod.Status().Do(ctx)
	if err != nil {
		return 0, &NetworkError{Op: "node status", Err: err}
	}
	return status.LastRound, nil
}

func (c *algodClient) WaitForRoundAfter(ctx context.Context, round uint64) (uint64, error) {
	status, err := c.algod.StatusAfterBlock(round).Do(ctx)
	if err != nil {
		return 0, &NetworkError{Op: "wait for round", Err: err}
	}
	return status.LastRound, nil
}

// isAccountMissing detects the node's "account not found" responses. An
// unfunded account is an expected state for this application, not a fault.
func isAccountMissing(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no accounts found") ||
		strings.Contains(msg, "account does not exist") ||
		strings.Contains(msg, "404")
}
