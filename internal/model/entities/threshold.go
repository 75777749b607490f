// Package entities internal/model/entities/threshold.go
package entities

// ThresholdRecord holds the watering thresholds of a single plant.
// The record lives in the key-value store, keyed by PlantID.
type ThresholdRecord struct {
	PlantID          string   `json:"plant_id" dynamodbav:"plant_id"`
	MinWaterLevel    *float64 `json:"min_water_level" dynamodbav:"min_water_level"`       // % of tank, nil when unset
	MinMoistureLevel *float64 `json:"min_moisture_level" dynamodbav:"min_moisture_level"` // % soil moisture, nil when unset
}

// Attribute names used by the store.
const (
	AttrPlantID          = "plant_id"
	AttrMinWaterLevel    = "min_water_level"
	AttrMinMoistureLevel = "min_moisture_level"
)
