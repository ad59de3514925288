package payhere

// CheckoutRequest carries the order and client details that go into the
// browser-submitted checkout form.
type CheckoutRequest struct {
	OrderID   string
	Items     string
	Amount    float64
	Currency  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string
}

// Gateway builds outbound checkout submissions and verifies inbound
// notifications for one merchant account.
type Gateway struct {
	creds     Credentials
	sandbox   bool
	returnURL string
	cancelURL string
	notifyURL string
}

func NewGateway(creds Credentials, sandbox bool, returnURL, cancelURL, notifyURL string) *Gateway {
	return &Gateway{
		creds:     creds,
		sandbox:   sandbox,
		returnURL: returnURL,
		cancelURL: cancelURL,
		notifyURL: notifyURL,
	}
}

func (g *Gateway) Name() string {
	return "payhere"
}

// CheckoutURL is the form action the client page submits to.
func (g *Gateway) CheckoutURL() string {
	if g.sandbox {
		return sandboxCheckoutURL
	}
	return liveCheckoutURL
}

// CheckoutFields returns the complete field set for the redirect form,
// including the integrity hash. Fails without side effects when credentials
// are missing.
func (g *Gateway) CheckoutFields(req CheckoutRequest) (map[string]string, error) {
	hash, err := GenerateHash(g.creds, req.OrderID, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"merchant_id": g.creds.MerchantID,
		"order_id":    req.OrderID,
		"items":       req.Items,
		"currency":    req.Currency,
		"amount":      FormatAmount(req.Amount),
		"first_name":  req.FirstName,
		"last_name":   req.LastName,
		"email":       req.Email,
		"phone":       req.Phone,
		"address":     req.Address,
		"city":        req.City,
		"country":     req.Country,
		"return_url":  g.returnURL,
		"cancel_url":  g.cancelURL,
		"notify_url":  g.notifyURL,
		"hash":        hash,
	}, nil
}

// VerifyNotification checks an inbound callback against this merchant's
// credentials.
func (g *Gateway) VerifyNotification(n *Notification) error {
	return VerifySignature(g.creds, n)
}
