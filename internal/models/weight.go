package models

import "time"

// WeightEntry is one weight sample of the tracking history
type WeightEntry struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}
