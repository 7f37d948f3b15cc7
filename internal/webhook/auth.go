package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/ironloft/gymboard/internal/domain"
)

// Verifier checks webhook request signatures: HMAC-SHA256 over the raw body,
// base64 encoded. With no secret configured verification is skipped entirely,
// which keeps local development working against unsigned test posts.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a signature verifier. An empty secret disables
// verification.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Sign computes the signature for a body. Used by tests and outbound
// registration handshakes.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a request signature against the raw body.
// With a secret configured, a missing signature fails closed.
func (v *Verifier) Verify(body []byte, signature string) error {
	if !v.Enabled() {
		return nil
	}
	if signature == "" {
		return domain.ErrMissingSignature
	}

	expected := v.Sign(body)
	// hmac.Equal is constant time.
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrInvalidSignature
	}
	return nil
}
