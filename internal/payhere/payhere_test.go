package payhere

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydesk/internal/models"
)

var testCreds = Credentials{
	MerchantID:     "101xxx",
	MerchantSecret: "SECRET",
}

// Recomputed by hand: upper(md5("101xxx" + "A123456789" + "15000.00" +
// "LKR" + upper(md5("SECRET")))).
const wantCheckoutHash = "891685F5D4C5C3AA79F8F72DEF565A8C"

func TestGenerateHashFixture(t *testing.T) {
	hash, err := GenerateHash(testCreds, "A123456789", 15000, "LKR")
	require.NoError(t, err)
	assert.Equal(t, wantCheckoutHash, hash)
}

func TestGenerateHashDeterministic(t *testing.T) {
	first, err := GenerateHash(testCreds, "A123456789", 15000, "LKR")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := GenerateHash(testCreds, "A123456789", 15000, "LKR")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Len(t, first, 32)
	assert.Equal(t, first, wantCheckoutHash)
}

func TestGenerateHashMissingCredentials(t *testing.T) {
	_, err := GenerateHash(Credentials{MerchantID: "101xxx"}, "A1", 100, "LKR")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = GenerateHash(Credentials{MerchantSecret: "SECRET"}, "A1", 100, "LKR")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = GenerateHash(Credentials{}, "A1", 100, "LKR")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// The checkout hash omits the status code, the verification concat includes
// it, so the two computations must never collide for the same order.
func TestCheckoutAndVerificationHashesDiffer(t *testing.T) {
	checkoutHash, err := GenerateHash(testCreds, "A123456789", 15000, "LKR")
	require.NoError(t, err)

	n := mustNotification(t, "order_id=A123456789&payhere_amount=15000.00&payhere_currency=LKR&status_code=2&md5sig="+checkoutHash)
	assert.ErrorIs(t, VerifySignature(testCreds, n), ErrSignatureMismatch)
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{15000, "15000.00"},
		{15000.5, "15000.50"},
		{0.005, "0.01"}, // half rounds away from zero
		{2.675, "2.67"}, // stored binary value sits just below the half
		{1234.567, "1234.57"},
		{0, "0.00"},
		{99.999, "100.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(tc.in), "FormatAmount(%v)", tc.in)
	}
}

func TestStatusForCodeTotality(t *testing.T) {
	cases := map[string]models.PaymentStatus{
		"2":   models.PaymentFullPaid,
		"0":   models.PaymentVerificationPending,
		"-1":  models.PaymentNotPaid,
		"-2":  models.PaymentNotPaid,
		"7":   models.PaymentNotPaid,
		"-99": models.PaymentNotPaid,
		"":    models.PaymentNotPaid,
		"abc": models.PaymentNotPaid,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusForCode(code), "code %q", code)
	}
}

func TestCheckoutFields(t *testing.T) {
	gw := NewGateway(testCreds, true,
		"https://example.lk/payment/return",
		"https://example.lk/payment/cancel",
		"https://example.lk/payment/payhere/notify",
	)

	fields, err := gw.CheckoutFields(CheckoutRequest{
		OrderID:   "A123456789",
		Items:     "Business Website Package",
		Amount:    15000,
		Currency:  "LKR",
		FirstName: "Nimal",
		LastName:  "Perera",
		Email:     "nimal@example.lk",
		Country:   "Sri Lanka",
	})
	require.NoError(t, err)

	assert.Equal(t, "101xxx", fields["merchant_id"])
	assert.Equal(t, "A123456789", fields["order_id"])
	assert.Equal(t, "15000.00", fields["amount"])
	assert.Equal(t, "LKR", fields["currency"])
	assert.Equal(t, wantCheckoutHash, fields["hash"])
	assert.Equal(t, "https://example.lk/payment/payhere/notify", fields["notify_url"])
	assert.Equal(t, "https://sandbox.payhere.lk/pay/checkout", gw.CheckoutURL())
}

func TestCheckoutFieldsNotConfigured(t *testing.T) {
	gw := NewGateway(Credentials{}, false, "", "", "")
	_, err := gw.CheckoutFields(CheckoutRequest{OrderID: "A1", Amount: 10, Currency: "LKR"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "https://www.payhere.lk/pay/checkout", gw.CheckoutURL())
}
