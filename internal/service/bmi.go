package service

import (
	"fmt"
	"math"

	"github.com/pageza/ada/backend/internal/models"
)

// BMI categories
const (
	BMIUnderweight = "Zayıf"
	BMINormal      = "Normal Kilolu"
	BMIOverweight  = "Fazla Kilolu"
	BMIObese       = "Obez"
)

const (
	healthyBMIMin = 18.5
	healthyBMIMax = 24.9
)

// BMIAnalysis describes a body mass index and the healthy weight range for
// the same height
type BMIAnalysis struct {
	BMI        float64 `json:"bmi"`
	Category   string  `json:"category"`
	HealthyMin float64 `json:"healthyMin"`
	HealthyMax float64 `json:"healthyMax"`
	Suggestion string  `json:"suggestion"`
}

// BMI computes weight(kg) / height(m)². It returns 0 when height is not positive.
func BMI(heightCM, weightKG float64) float64 {
	h := heightCM / 100
	if h <= 0 {
		return 0
	}
	return weightKG / (h * h)
}

// AnalyzeBMI classifies the profile and suggests the smallest change that
// reaches the healthy range
func AnalyzeBMI(heightCM, weightKG float64) BMIAnalysis {
	bmi := BMI(heightCM, weightKG)
	h := heightCM / 100
	minWeight := healthyBMIMin * h * h
	maxWeight := healthyBMIMax * h * h

	analysis := BMIAnalysis{
		BMI:        round1(bmi),
		Category:   bmiCategory(bmi),
		HealthyMin: round1(minWeight),
		HealthyMax: round1(maxWeight),
	}

	// the suggestion follows the category so both always agree
	switch analysis.Category {
	case BMIUnderweight:
		analysis.Suggestion = fmt.Sprintf(MsgBMIGainFormat, minWeight-weightKG)
	case BMINormal:
		analysis.Suggestion = MsgBMIHealthy
	default:
		analysis.Suggestion = fmt.Sprintf(MsgBMILoseFormat, weightKG-maxWeight)
	}
	return analysis
}

// AnalyzeProfileBMI is AnalyzeBMI for a stored profile
func AnalyzeProfileBMI(p models.Profile) BMIAnalysis {
	return AnalyzeBMI(p.Height, p.Weight)
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
