// Package feed implements the inbound half of the relay: the HTTP adapter
// that receives TBA webhook notifications, the HMAC authenticity check that
// gates processing, and the fallback policy for payloads the renderer cannot
// make sense of.
package feed

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// MACHeader is the request header carrying the hex-encoded HMAC of the raw
// request body.
const MACHeader = "X-TBA-HMAC"

// ErrMACMismatch is returned when the presented MAC does not match the
// digest computed over the raw body with the configured secret.
var ErrMACMismatch = errors.New("feed: mac does not match request body")

// ErrMACMissing is returned when a secret is configured but the request
// carries no MAC header.
var ErrMACMissing = errors.New("feed: mac header missing")

// ComputeMAC returns the hex-encoded HMAC-SHA256 of body keyed with secret.
// Exposed so the handler can log the expected digest on a rejection and so
// tests and the CLI harness can forge valid requests.
func ComputeMAC(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyMAC checks the presented MAC against the digest of the exact raw
// request bytes. With no secret configured, verification is skipped and the
// request is treated as authorized (local/dev mode). The comparison is
// constant-time.
func VerifyMAC(secret, body []byte, presented string) error {
	if len(secret) == 0 {
		return nil
	}
	if presented == "" {
		return ErrMACMissing
	}
	expected := ComputeMAC(secret, body)
	if !hmac.Equal([]byte(expected), []byte(presented)) {
		return ErrMACMismatch
	}
	return nil
}
