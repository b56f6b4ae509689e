package models

import "time"

// BagWeightKg is the standard sack size feed is purchased in.
const BagWeightKg = 50.0

// Feed is one inventory row per feed product. PricePerKg is derived from
// PricePerBag on every write.
type Feed struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Supplier      string    `json:"supplier"`
	Stock         float64   `json:"stock"`         // kilograms on hand
	PricePerBag   float64   `json:"pricePerBag"`   // per 50kg bag
	PricePerKg    float64   `json:"pricePerKg"`    // derived: pricePerBag / 50
	FeedingSchema float64   `json:"feedingSchema"` // grams per bird per day
	UpdatedAt     time.Time `json:"updatedAt"`
}
