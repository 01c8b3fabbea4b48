package domain

import "time"

// SeedItems devolve o catálogo inicial usado quando não há itens gravados.
func SeedItems(now time.Time) []Item {
	return []Item{
		{
			ID:               "1",
			Name:             "Wireless Mouse",
			SKU:              "WM-001",
			Quantity:         50,
			PurchasePrice:    20.00,
			PurchasePriceIDR: 234000,
			SellingPrice:     39.99,
			SellingPriceIDR:  468000,
			Category:         "Electronics",
			ProductURL:       "https://example.com/wireless-mouse",
			CreatedAt:        time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
			LastUpdated:      now,
			Variations: []Variation{
				{ID: "1-1", Color: "Black", Size: "Standard", Quantity: 30},
				{ID: "1-2", Color: "White", Size: "Standard", Quantity: 20},
			},
		},
	}
}
