package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance is how far a webhook timestamp may drift from our clock
// before the event is rejected as a possible replay.
const DefaultTolerance = 5 * time.Minute

// Verifier authenticates inbound webhooks. The processor signs
// timestamp + "." + rawBody with a shared secret and sends the result in the
// signature header as "t=<unix>,v1=<hex>"; we recompute and compare in
// constant time.
type Verifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier creates a verifier for the given signing secret. An empty
// secret is tolerated at construction; verification then fails closed with
// ErrMisconfigured on every call.
func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret:    strings.TrimSpace(secret),
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
}

// VerifyEvent checks the signature header against the raw body and, on
// success, parses the body into an Event. The raw body must be the exact
// bytes received on the wire.
func (v *Verifier) VerifyEvent(rawBody []byte, sigHeader string) (*Event, error) {
	if v.secret == "" {
		return nil, ErrMisconfigured
	}

	timestamp, candidates, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	age := v.now().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	expected := mac.Sum(nil)

	matched := false
	for _, candidate := range candidates {
		decoded, decErr := hex.DecodeString(candidate)
		if decErr != nil {
			continue
		}
		if hmac.Equal(expected, decoded) {
			matched = true
		}
	}
	if !matched {
		return nil, ErrInvalidSignature
	}

	return parseEvent(rawBody)
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]" into the
// timestamp and the signature candidates. The processor may send several v1
// entries while a secret is being rotated.
func parseSignatureHeader(header string) (int64, []string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, nil, ErrInvalidSignature
	}

	var timestamp int64 = -1
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			candidates = append(candidates, strings.ToLower(kv[1]))
		}
	}

	if timestamp < 0 || len(candidates) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, candidates, nil
}
