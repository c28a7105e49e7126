package models

import (
	"errors"
	"fmt"
)

type Gender string

const (
	GenderMale   Gender = "Erkek"
	GenderFemale Gender = "Kadın"
)

type Goal string

const (
	GoalLoseWeight Goal = "Kilo Vermek"
	GoalMaintain   Goal = "Kiloyu Korumak"
	GoalGainWeight Goal = "Kilo Almak"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "Hareketsiz (Masa başı)"
	ActivityLight     ActivityLevel = "Az Hareketli (Haftada 1-3 gün spor)"
	ActivityModerate  ActivityLevel = "Orta Hareketli (Haftada 3-5 gün spor)"
	ActivityActive    ActivityLevel = "Çok Hareketli (Haftada 6-7 gün spor)"
)

var ErrInvalidProfile = errors.New("invalid profile")

// Profile holds the biometric data of one account. Height is in cm, weights in kg.
type Profile struct {
	Age                 int           `json:"age" binding:"required,min=1,max=120"`
	Height              float64       `json:"height" binding:"required,min=50,max=300"`
	Weight              float64       `json:"weight" binding:"required,min=20,max=400"`
	TargetWeight        float64       `json:"targetWeight" binding:"required,min=20,max=400"`
	Gender              Gender        `json:"gender" binding:"required"`
	Goal                Goal          `json:"goal" binding:"required"`
	ActivityLevel       ActivityLevel `json:"activityLevel" binding:"required"`
	DietaryRestrictions string        `json:"dietaryRestrictions,omitempty"`
}

// Validate checks ranges and enum values
func (p Profile) Validate() error {
	switch {
	case p.Age < 1 || p.Age > 120:
		return fmt.Errorf("%w: age %d out of range", ErrInvalidProfile, p.Age)
	case p.Height < 50 || p.Height > 300:
		return fmt.Errorf("%w: height %.1f out of range", ErrInvalidProfile, p.Height)
	case p.Weight < 20 || p.Weight > 400:
		return fmt.Errorf("%w: weight %.1f out of range", ErrInvalidProfile, p.Weight)
	case p.TargetWeight < 20 || p.TargetWeight > 400:
		return fmt.Errorf("%w: target weight %.1f out of range", ErrInvalidProfile, p.TargetWeight)
	}

	switch p.Gender {
	case GenderMale, GenderFemale:
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, p.Gender)
	}

	switch p.Goal {
	case GoalLoseWeight, GoalMaintain, GoalGainWeight:
	default:
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, p.Goal)
	}

	switch p.ActivityLevel {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive:
	default:
		return fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, p.ActivityLevel)
	}

	return nil
}
