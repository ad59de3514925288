package handler

import (
	"strconv"
	"strings"

	"agencydesk/internal/models"
)

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

// splitName breaks a client's full name into the first/last fields the
// checkout form wants.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func checkoutItems(order *models.Order) string {
	if order.OrderType == models.OrderTypePackage && order.PackageCode != "" {
		return "Website package " + order.PackageCode
	}
	if order.Description != "" {
		return order.Description
	}
	return "Custom website development"
}
