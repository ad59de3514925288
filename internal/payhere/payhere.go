package payhere

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
)

// PayHere checkout endpoints. The form built by CheckoutFields is submitted
// by the client's browser to one of these.
const (
	liveCheckoutURL    = "https://www.payhere.lk/pay/checkout"
	sandboxCheckoutURL = "https://sandbox.payhere.lk/pay/checkout"
)

// ErrNotConfigured means merchant credentials are missing. No hash can be
// generated and no callback can be verified until both are set, so the whole
// payment path is down.
var ErrNotConfigured = errors.New("payhere: merchant id/secret not configured")

// Credentials holds the process-wide merchant identity. The secret itself is
// never transmitted; only its MD5 digest enters hash computations.
type Credentials struct {
	MerchantID     string
	MerchantSecret string
}

func (c Credentials) configured() bool {
	return c.MerchantID != "" && c.MerchantSecret != ""
}

// upperMD5 is the gateway-mandated digest primitive: MD5, uppercase hex.
// MD5 is a PayHere protocol requirement, not a choice made here.
func upperMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// FormatAmount renders an amount exactly as it must appear in hash input:
// two decimal places, halves rounded away from zero. The gateway recomputes
// the hash from the same string, so this formatting is load-bearing.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", math.Round(amount*100)/100)
}

// GenerateHash produces the 32-char uppercase hex integrity token embedded in
// the outbound checkout form. Pure function of credentials and inputs.
func GenerateHash(creds Credentials, orderID string, amount float64, currency string) (string, error) {
	if !creds.configured() {
		return "", ErrNotConfigured
	}
	hashedSecret := upperMD5(creds.MerchantSecret)
	return upperMD5(creds.MerchantID + orderID + FormatAmount(amount) + currency + hashedSecret), nil
}
