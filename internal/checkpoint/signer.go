package checkpoint

import (
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
)

// Signer optionally authenticates checkpoint blobs with a Dilithium
// (ML-DSA-87) keypair. Adapted from the teacher's signature.go
// (SignatureScheme); most callers won't configure one, matching the
// teacher's own optional-context constructor.
type Signer struct {
	pub  *mldsa87.PublicKey
	priv *mldsa87.PrivateKey
}

// NewSigner generates a fresh ML-DSA-87 keypair for checkpoint signing.
func NewSigner() (*Signer, error) {
	pub, priv, err := mldsa87.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: generating signing key: %w", err)
	}
	return &Signer{pub: pub, priv: priv}, nil
}

// Sign signs blob, returning a detached signature.
func (s *Signer) Sign(blob []byte) ([]byte, error) {
	sig := make([]byte, mldsa87.SignatureSize)
	if err := mldsa87.SignTo(s.priv, blob, nil, true, sig); err != nil {
		return nil, fmt.Errorf("checkpoint: signing: %w", err)
	}
	return sig, nil
}

// Verify checks a detached signature over blob.
func (s *Signer) Verify(blob, sig []byte) bool {
	return mldsa87.Verify(s.pub, blob, nil, sig)
}
