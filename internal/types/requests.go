package types

import (
	"encoding/json"
	"fmt"
)

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// WeightRequest carries the raw tracker input. Blank or non-numeric input is
// accepted and ignored.
type WeightRequest struct {
	Weight WeightInput `json:"weight"`
}

// WeightInput can handle both string and number values for the weight field
type WeightInput struct {
	Value string
}

func (w *WeightInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		w.Value = ""
		return nil
	}

	// Try to unmarshal as number first
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		w.Value = num.String()
		return nil
	}

	// Try to unmarshal as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		w.Value = str
		return nil
	}

	return fmt.Errorf("invalid weight format")
}

// StoreLookupRequest is bound from the query string of the store lookup
type StoreLookupRequest struct {
	Lat    *float64 `form:"lat"`
	Lng    *float64 `form:"lng"`
	Denied bool     `form:"denied"`
}

// BMIRequest optionally overrides the stored profile for a BMI calculation
type BMIRequest struct {
	Height *float64 `form:"height"`
	Weight *float64 `form:"weight"`
}
