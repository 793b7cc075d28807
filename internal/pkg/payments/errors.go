package payments

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound means the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidSignature means the webhook signature header did not match
	// the payload, or its timestamp fell outside the tolerance window.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedPayload means the webhook body could not be parsed.
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrMisconfigured means a required credential is absent. Verification
	// fails closed rather than accepting unsigned events.
	ErrMisconfigured = errors.New("payment credentials not configured")

	// ErrGateway covers processor-side failures that are not card declines.
	ErrGateway = errors.New("payment gateway error")
)

// DeclinedError is returned when the processor rejects the charge attempt.
// The message is the processor's human-readable decline reason and is safe
// to show to the caller.
type DeclinedError struct {
	Msg string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Msg)
}

// UnexpectedError wraps transport failures and anything else the gateway
// client could not classify. Callers should treat it as a server fault and
// not echo the wrapped message to untrusted clients.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected payment gateway failure: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
