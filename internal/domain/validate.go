package domain

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that the thresholds strictly decrease from S to D and
// that D is not negative.
func (t TierThresholds) Validate() error {
	return validate.Struct(t)
}

func (c TrackerConfig) Validate() error {
	return validate.Struct(c)
}
