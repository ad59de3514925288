package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agencydesk/internal/models"
)

func sampleOrders() []models.Order {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.Order{
		{
			ID: 1, FormattedOrderID: "WD1AAA", ClientName: "Nimal Perera",
			ClientEmail: "nimal@example.lk", Amount: 15000,
			OrderStatus: models.OrderApproved, PaymentStatus: models.PaymentFullPaid,
			CreatedAt: base,
		},
		{
			ID: 2, FormattedOrderID: "WD2BBB", ClientName: "Kamala Silva",
			ClientEmail: "kamala@example.lk", Amount: 45000,
			OrderStatus: models.OrderInProgress, PaymentStatus: models.PaymentNotPaid,
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID: 3, FormattedOrderID: "WD3CCC", ClientName: "Ruwan Fernando",
			ClientEmail: "ruwan@example.lk", Amount: 8000,
			OrderStatus: models.OrderApproved, PaymentStatus: models.PaymentNotPaid,
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func ids(orders []models.Order) []uint {
	out := make([]uint, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestFilterOrdersByStatus(t *testing.T) {
	got := filterOrders(sampleOrders(), orderFilter{OrderStatus: string(models.OrderApproved)})
	assert.Equal(t, []uint{1, 3}, ids(got))

	got = filterOrders(sampleOrders(), orderFilter{PaymentStatus: string(models.PaymentNotPaid)})
	assert.Equal(t, []uint{2, 3}, ids(got))

	got = filterOrders(sampleOrders(), orderFilter{
		OrderStatus:   string(models.OrderApproved),
		PaymentStatus: string(models.PaymentNotPaid),
	})
	assert.Equal(t, []uint{3}, ids(got))
}

func TestFilterOrdersByQuery(t *testing.T) {
	got := filterOrders(sampleOrders(), orderFilter{Query: "kamala"})
	assert.Equal(t, []uint{2}, ids(got))

	got = filterOrders(sampleOrders(), orderFilter{Query: "wd3"})
	assert.Equal(t, []uint{3}, ids(got))

	got = filterOrders(sampleOrders(), orderFilter{Query: "no-such-client"})
	assert.Empty(t, got)

	got = filterOrders(sampleOrders(), orderFilter{})
	assert.Len(t, got, 3)
}

func TestSortOrders(t *testing.T) {
	orders := sampleOrders()
	sortOrders(orders, "")
	assert.Equal(t, []uint{3, 2, 1}, ids(orders), "default is newest first")

	orders = sampleOrders()
	sortOrders(orders, "oldest")
	assert.Equal(t, []uint{1, 2, 3}, ids(orders))

	orders = sampleOrders()
	sortOrders(orders, "amount_desc")
	assert.Equal(t, []uint{2, 1, 3}, ids(orders))

	orders = sampleOrders()
	sortOrders(orders, "amount_asc")
	assert.Equal(t, []uint{3, 1, 2}, ids(orders))
}

func TestPaginateOrders(t *testing.T) {
	orders := sampleOrders()

	page := paginateOrders(orders, 1, 2)
	assert.Equal(t, []uint{1, 2}, ids(page))

	page = paginateOrders(orders, 2, 2)
	assert.Equal(t, []uint{3}, ids(page))

	page = paginateOrders(orders, 3, 2)
	assert.Empty(t, page)

	page = paginateOrders(orders, 0, 0)
	assert.Len(t, page, 3)
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, validOrderStatus(models.OrderPendingApproval))
	assert.True(t, validOrderStatus(models.OrderCompleted))
	assert.False(t, validOrderStatus(models.OrderStatus("Shipped")))
	assert.False(t, validOrderStatus(models.OrderStatus("")))
}

func TestNewFormattedOrderID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newFormattedOrderID()
		assert.Len(t, id, 10)
		assert.Equal(t, "WD", id[:2])
		assert.False(t, seen[id], "formatted ids must not repeat")
		seen[id] = true
	}
}
