package ledger

import "fmt"

// SubmissionError reports a transaction the node refused to accept:
// malformed transaction, stale params, or a fee the account cannot cover.
// NodeMessage carries the node's raw error text for diagnosability.
type SubmissionError struct {
	TxID        string
	NodeMessage string
	Err         error
}

func (e *SubmissionError) Error() string {
	if e.NodeMessage != "" {
		return fmt.Sprintf("transaction submission rejected: %s", e.NodeMessage)
	}
	return fmt.Sprintf("transaction submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure reaching the node.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ledger node unreachable during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotConfirmedError reports a verification attempted before the
// transaction reached finality. It is a precondition failure, not a
// transient state the caller should expect to be retried internally.
type NotConfirmedError struct {
	TxID string
}

func (e *NotConfirmedError) Error() string {
	return fmt.Sprintf("transaction %s is not confirmed yet", e.TxID)
}
