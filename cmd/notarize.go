package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/caretrail/docnotary/pkg/digest"
)

var (
	notarizeDocumentID   string
	notarizeDocumentName string
)

var notarizeCmd = &cobra.Command{
	Use:   "notarize <file>",
	Short: "Record a document's digest on the ledger",
	Long: `Compute the digest of a file, submit it inside a zero-value note
transaction, and wait for the ledger to confirm it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, rt, err := setup(cmd.Context(), "notarize-"+uuid.New().String())
		if err != nil {
			return err
		}
		defer rt.close()

		path := args[0]
		name := notarizeDocumentName
		if name == "" {
			name = filepath.Base(path)
		}
		docID := notarizeDocumentID
		if docID == "" {
			docID = uuid.New().String()
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		fi, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat document: %w", err)
		}

		receipt, fileHash := rt.service.NotarizeFile(ctx, docID, name, f, fi.Size())

		fmt.Printf("document id: %s\n", docID)
		fmt.Printf("file hash:   %s\n", fileHash)
		if !receipt.Success {
			fmt.Printf("status:      failed (%s)\n", receipt.Error)
			if receipt.TransactionID != "" {
				fmt.Printf("transaction: %s\n", receipt.TransactionID)
				fmt.Printf("explorer:    %s\n", rt.service.Explorer().TxURL(receipt.TransactionID))
			}
			return fmt.Errorf("notarization failed: %s", receipt.Error)
		}

		fmt.Printf("status:      confirmed in round %d\n", receipt.ConfirmedRound)
		fmt.Printf("transaction: %s\n", receipt.TransactionID)
		fmt.Printf("explorer:    %s\n", rt.service.Explorer().TxURL(receipt.TransactionID))
		return nil
	},
}

var verifyHash string

var verifyCmd = &cobra.Command{
	Use:   "verify <txid> [file]",
	Short: "Verify a document against its notarization",
	Long: `Fetch the notarization transaction, decode its note, and compare the
recorded digest against the digest of a local file (or --hash).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, rt, err := setup(cmd.Context(), "verify-"+uuid.New().String())
		if err != nil {
			return err
		}
		defer rt.close()

		txid := args[0]
		expected := verifyHash
		if len(args) == 2 {
			if expected != "" {
				return fmt.Errorf("pass either a file or --hash, not both")
			}
			expected, err = digest.ComputeFile(args[1])
			if err != nil {
				return fmt.Errorf("digest local file: %w", err)
			}
		}
		if expected == "" {
			return fmt.Errorf("nothing to verify against: pass a file or --hash")
		}

		proof, err := rt.service.VerifyDocumentIntegrity(ctx, txid, expected)
		if err != nil {
			return err
		}

		fmt.Printf("transaction:   %s\n", proof.TransactionID)
		fmt.Printf("block:         %d\n", proof.BlockNumber)
		fmt.Printf("notarized at:  %s\n", proof.Timestamp)
		fmt.Printf("on-chain hash: %s\n", proof.DocumentHash)
		fmt.Printf("local hash:    %s\n", expected)
		if proof.Verified {
			fmt.Println("verified:      yes")
			return nil
		}
		fmt.Println("verified:      NO - content does not match the notarized digest")
		return nil
	},
}

func init() {
	notarizeCmd.Flags().StringVar(&notarizeDocumentID, "id", "", "document identifier (generated when omitted)")
	notarizeCmd.Flags().StringVar(&notarizeDocumentName, "name", "", "document name (file name when omitted)")
	verifyCmd.Flags().StringVar(&verifyHash, "hash", "", "expected digest as 64 hex chars")

	rootCmd.AddCommand(notarizeCmd)
	rootCmd.AddCommand(verifyCmd)
}
