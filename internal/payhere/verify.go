package payhere

import (
	"errors"
	"strings"

	"agencydesk/internal/models"
)

// ErrSignatureMismatch means the callback's md5sig does not match the
// signature recomputed from the shared secret and the callback's own fields.
// The callback must not be trusted and no state may change.
var ErrSignatureMismatch = errors.New("payhere: md5sig mismatch")

// VerifySignature recomputes the expected callback signature and compares it
// to the gateway-supplied md5sig, case-insensitively. The verification concat
// is the checkout concat with the status code inserted before the hashed
// secret; the outbound form omits it because the outcome is not yet known.
func VerifySignature(creds Credentials, n *Notification) error {
	if !creds.configured() {
		return ErrNotConfigured
	}
	hashedSecret := upperMD5(creds.MerchantSecret)
	expected := upperMD5(creds.MerchantID + n.OrderID() + n.Amount() + n.Currency() + n.StatusCode() + hashedSecret)
	if expected != strings.ToUpper(n.MD5Sig()) {
		return ErrSignatureMismatch
	}
	return nil
}

// StatusForCode maps a PayHere status code to the domain payment status.
// Total over all inputs: unrecognized codes fall back to Not Paid.
func StatusForCode(code string) models.PaymentStatus {
	switch code {
	case "2":
		return models.PaymentFullPaid
	case "0":
		return models.PaymentVerificationPending
	case "-1", "-2":
		return models.PaymentNotPaid
	default:
		return models.PaymentNotPaid
	}
}
