package messages

import (
	"encoding/json"
	"errors"

	"github.com/LeonardoBeccarini/plantcare/internal/model/entities"
)

var (
	ErrMissingBody   = errors.New("missing request body")
	ErrMalformedBody = errors.New("malformed request body")
	ErrMissingKey    = errors.New("invalid request parameters")
)

// UpdateThresholdRequest is the payload of a threshold update.
// Thresholds are optional: a nil value clears the stored one.
type UpdateThresholdRequest struct {
	PlantID          string   `json:"plant_id"`
	MinWaterLevel    *float64 `json:"min_water_level"`
	MinMoistureLevel *float64 `json:"min_moisture_level"`
}

// ParseUpdateThresholdRequest decodes and validates a request body.
// The returned error is one of ErrMissingBody, ErrMalformedBody or ErrMissingKey.
//
// Keys are matched exactly: encoding/json would also accept "PLANT_ID" or
// "Plant_Id" for plant_id, so the object is split into raw members first.
func ParseUpdateThresholdRequest(body []byte) (UpdateThresholdRequest, error) {
	var req UpdateThresholdRequest
	if len(body) == 0 {
		return req, ErrMissingBody
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return UpdateThresholdRequest{}, classify(err)
	}
	for key, dst := range map[string]any{
		entities.AttrPlantID:          &req.PlantID,
		entities.AttrMinWaterLevel:    &req.MinWaterLevel,
		entities.AttrMinMoistureLevel: &req.MinMoistureLevel,
	} {
		raw, ok := members[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return UpdateThresholdRequest{}, classify(err)
		}
	}

	if err := req.Validate(); err != nil {
		return UpdateThresholdRequest{}, err
	}
	return req, nil
}

// well-formed JSON with the wrong types is a parameter problem
func classify(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ErrMissingKey
	}
	return ErrMalformedBody
}

// Validate checks the required key.
func (r UpdateThresholdRequest) Validate() error {
	if r.PlantID == "" {
		return ErrMissingKey
	}
	return nil
}
