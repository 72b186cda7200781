// Package checkpoint implements the save/load/delete contract of §4.8: an
// opaque blob in, byte-level format unspecified by the core. This adapter
// appends a BLAKE3 checksum (adapted from the teacher's entanglement.go
// CreateEntangledState keyed-hash pattern) and writes atomically via
// temp-file-then-rename, so "a failed save must not corrupt a prior good
// one" (§4.8) holds: a half-written temp file never gets renamed over the
// previous good checkpoint.
package checkpoint

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

const checksumSize = 32

// Bridge is the save/load/delete contract (§4.8). Handle is an opaque
// caller-provided identifier; the Default implementation treats it as a
// filesystem path.
type Bridge interface {
	Save(blob []byte, handle string) error
	Load(handle string) ([]byte, bool, error)
	Delete(handle string) error
}

// Default is a filesystem-backed Bridge.
type Default struct {
	// Signer, if set, authenticates every saved blob (SPEC_FULL.md §2:
	// optional mldsa87 signing). Verification failures are treated as
	// CheckpointReadError, the same as a checksum mismatch.
	Signer *Signer
}

// Save writes blob to handle, appending a BLAKE3 checksum (and, if a Signer
// is configured, a signature) and replacing any prior checkpoint atomically.
func (d *Default) Save(blob []byte, handle string) error {
	if handle == "" {
		return fmt.Errorf("checkpoint: empty handle")
	}
	sum := blake3.Sum256(blob)

	var buf bytes.Buffer
	buf.Write(blob)
	buf.Write(sum[:])

	signed := d.Signer != nil
	if signed {
		sig, err := d.Signer.Sign(blob)
		if err != nil {
			return fmt.Errorf("checkpoint: signing blob: %w", err)
		}
		var sigLen uint32 = uint32(len(sig))
		if err := binary.Write(&buf, binary.LittleEndian, sigLen); err != nil {
			return fmt.Errorf("checkpoint: writing signature length: %w", err)
		}
		buf.Write(sig)
	}
	// signed must be the trailing byte: Load reads it last to know whether
	// to peel a signature off before the checksum.
	if err := binary.Write(&buf, binary.LittleEndian, signed); err != nil {
		return fmt.Errorf("checkpoint: writing signed flag: %w", err)
	}

	dir := filepath.Dir(handle)
	tmp, err := os.CreateTemp(dir, ".checkpoint-*.tmp")
	if err != nil {
		return fmt.Errorf("checkpoint: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, handle); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: renaming temp file over %s: %w", handle, err)
	}
	return nil
}

// Load reads and verifies the checkpoint at handle. The second return value
// is false when no checkpoint exists (not an error, §7
// CheckpointReadError is only surfaced via the error return for a present
// but corrupt file — recover() callers should still treat either case as
// "start fresh").
func (d *Default) Load(handle string) ([]byte, bool, error) {
	raw, err := os.ReadFile(handle)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("checkpoint: reading %s: %w", handle, err)
	}

	if len(raw) < checksumSize+1 {
		return nil, false, fmt.Errorf("checkpoint: truncated file %s", handle)
	}
	signedByte := raw[len(raw)-1]
	raw = raw[:len(raw)-1]
	var sig []byte
	if signedByte == 1 {
		if len(raw) < 4 {
			return nil, false, fmt.Errorf("checkpoint: truncated signature length in %s", handle)
		}
		sigLen := binary.LittleEndian.Uint32(raw[len(raw)-4:])
		raw = raw[:len(raw)-4]
		if uint32(len(raw)) < sigLen {
			return nil, false, fmt.Errorf("checkpoint: truncated signature in %s", handle)
		}
		sig = raw[len(raw)-int(sigLen):]
		raw = raw[:len(raw)-int(sigLen)]
	}
	if len(raw) < checksumSize {
		return nil, false, fmt.Errorf("checkpoint: truncated checksum in %s", handle)
	}
	blob := raw[:len(raw)-checksumSize]
	wantSum := raw[len(raw)-checksumSize:]
	gotSum := blake3.Sum256(blob)
	if !bytes.Equal(gotSum[:], wantSum) {
		return nil, false, fmt.Errorf("checkpoint: checksum mismatch in %s", handle)
	}
	if d.Signer != nil {
		if sig == nil {
			return nil, false, fmt.Errorf("checkpoint: %s is unsigned but a signer is configured", handle)
		}
		if !d.Signer.Verify(blob, sig) {
			return nil, false, fmt.Errorf("checkpoint: signature verification failed for %s", handle)
		}
	}
	return blob, true, nil
}

// Delete removes the checkpoint at handle, if present.
func (d *Default) Delete(handle string) error {
	if err := os.Remove(handle); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("checkpoint: deleting %s: %w", handle, err)
	}
	return nil
}
