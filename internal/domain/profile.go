package domain

import (
	"fmt"
	"math"
)

// Activity levels recognized by the caloric-need estimate.
const (
	ActivitySedentary  = "Sedentary"
	ActivityLight      = "Light"
	ActivityModerate   = "Moderate"
	ActivityActive     = "Active"
	ActivityVeryActive = "Very active"
)

// activityMultipliers scale BMR into a daily caloric need. Unknown levels
// fall back to the moderate multiplier.
var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Profile is the single per-user profile document. Height is stored in cm
// and weight in kg regardless of the display units; Units only controls
// formatting.
type Profile struct {
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	BodyFat       float64 `json:"bodyFat"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activityLevel"`
	ProfileImage  string  `json:"profileImage,omitempty"`
	Notifications bool    `json:"notifications"`
	Units         string  `json:"units"`
	SchemaVersion int     `json:"schemaVersion"`
}

// BMI returns the body mass index (kg/m²), or 0 when height is unset.
func (p Profile) BMI() float64 {
	if p.Height <= 0 {
		return 0
	}
	heightM := p.Height / 100
	return p.Weight / (heightM * heightM)
}

// BMR estimates the basal metabolic rate using the Mifflin-St Jeor equation.
func (p Profile) BMR() float64 {
	bmr := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if p.Gender == "Male" {
		return bmr + 5
	}
	return bmr - 161
}

// DailyCalories estimates the daily caloric need from BMR and activity level.
func (p Profile) DailyCalories() int {
	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[ActivityModerate]
	}
	return int(math.Round(p.BMR() * multiplier))
}

// FormattedHeight renders the height in the profile's display units.
func (p Profile) FormattedHeight() string {
	if p.Units == "metric" {
		return fmt.Sprintf("%.0f cm", p.Height)
	}
	totalInches := p.Height / 2.54
	feet := int(totalInches / 12)
	inches := int(math.Round(math.Mod(totalInches, 12)))
	if inches == 12 {
		feet++
		inches = 0
	}
	return fmt.Sprintf("%d'%d\"", feet, inches)
}

// FormattedWeight renders the weight in the profile's display units.
func (p Profile) FormattedWeight() string {
	if p.Units == "metric" {
		return fmt.Sprintf("%.0f kg", p.Weight)
	}
	return fmt.Sprintf("%d lbs", int(math.Round(p.Weight*2.20462)))
}
