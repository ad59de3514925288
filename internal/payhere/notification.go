package payhere

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Field is a single key/value pair from the gateway callback body.
type Field struct {
	Key   string
	Value string
}

// Notification is the flat form-encoded payload PayHere posts to the notify
// URL. Field order is preserved as received so the audit snapshot written to
// the order matches the wire payload, and arbitrary extra fields are kept
// verbatim alongside the ones verification actually reads.
type Notification struct {
	fields []Field
	index  map[string]string
}

// ParseNotification decodes a raw form-encoded body, keeping fields in wire
// order. Duplicate keys keep their first value for lookups but all
// occurrences survive in the snapshot.
func ParseNotification(rawBody string) (*Notification, error) {
	n := &Notification{index: make(map[string]string)}
	for _, pair := range strings.Split(rawBody, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		n.fields = append(n.fields, Field{Key: decodedKey, Value: decodedValue})
		if _, seen := n.index[decodedKey]; !seen {
			n.index[decodedKey] = decodedValue
		}
	}
	return n, nil
}

// Get returns the first value for key, or "".
func (n *Notification) Get(key string) string {
	return n.index[key]
}

// Named accessors for the fields the verifier and reconciler consume.

func (n *Notification) OrderID() string    { return n.Get("order_id") }
func (n *Notification) Amount() string     { return n.Get("payhere_amount") }
func (n *Notification) Currency() string   { return n.Get("payhere_currency") }
func (n *Notification) StatusCode() string { return n.Get("status_code") }
func (n *Notification) MD5Sig() string     { return n.Get("md5sig") }

// Fields returns the payload in wire order.
func (n *Notification) Fields() []Field {
	return n.fields
}

// MarshalJSON writes the payload as a JSON object with keys in wire order.
func (n *Notification) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range n.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
