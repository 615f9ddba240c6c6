package orders

import "github.com/quikbite/quikbite/models"

// FeeCalculator computes the shipping fee for an order. Coordinates are
// accepted so a distance-based implementation (haversine or a routing
// service) can replace the flat fee without touching callers.
type FeeCalculator interface {
	Fee(orderType string, restLat, restLng, destLat, destLng float64) float64
}

// FixedFee charges a flat surcharge for delivery orders and nothing for
// pickup, ignoring coordinates.
type FixedFee struct {
	DeliveryFee float64
}

func (f FixedFee) Fee(orderType string, _, _, _, _ float64) float64 {
	if orderType == models.OrderTypeDelivery {
		return f.DeliveryFee
	}
	return 0
}
