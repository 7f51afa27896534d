// Package digest computes the content fingerprint a notarization records
// on the ledger: a 32-byte BLAKE3 digest, rendered as 64 lowercase hex
// characters. The digest depends only on the byte sequence, never on the
// file name, media type, or call order, and the streaming variant is
// bit-identical to the in-memory one over the same bytes.
package digest

import (
	"encoding/hex"
	"io"
	"os"
	"strings"

	"lukechampine.com/blake3"
)

// Size is the digest length in bytes; HexLen the length of its hex form.
const (
	Size   = 32
	HexLen = 2 * Size
)

// Compute returns the hex digest of b.
func Compute(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ComputeReader returns the hex digest of everything readable from r.
// sizeHint, when positive, picks the read buffer size; pass 0 when the
// total size is unknown.
func ComputeReader(r io.Reader, sizeHint int64) (string, error) {
	buf := make([]byte, bufSizeFor(sizeHint))

	h := blake3.New(Size, nil)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return "", werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", rerr
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ComputeFile returns the hex digest of the file's contents.
func ComputeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	return ComputeReader(f, fi.Size())
}

// Equal reports whether two hex digests identify the same content. Hex
// case is not significant.
func Equal(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

// bufSizeFor picks a read buffer size from the total input size. Small
// inputs get a small buffer; large files read in bigger chunks so the
// hash loop is not dominated by syscalls.
func bufSizeFor(total int64) int64 {
	switch {
	case total <= 0:
		return 512 << 10
	case total <= 4<<20:
		return 512 << 10
	case total <= 32<<20:
		return 1 << 20
	case total <= 2<<30:
		return 2 << 20
	default:
		return 4 << 20
	}
}
