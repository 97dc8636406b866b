// Package bac implements the blood alcohol estimation math: ethanol unit
// conversion, the two-phase Widmark model, a sensor-deviation secondary
// estimator, the blend policy, and the impairment classifier.
package bac

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrInvalidWeight  = errors.New("weight must be positive")
	ErrInvalidSex     = errors.New("sex must be male or female")
	ErrInvalidVolume  = errors.New("drink volume must be positive")
	ErrInvalidPercent = errors.New("alcohol percent must be in (0, 100]")
)

// Sex selects the Widmark body-water distribution ratio.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex normalizes and validates a sex value.
func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSex, s)
	}
}

// Profile describes the monitored person. Immutable for the session lifetime.
type Profile struct {
	WeightLbs float64
	Sex       Sex
}

// Validate checks the profile at session creation. Rejection here is fatal to
// the creating call only; it never touches existing sessions.
func (p Profile) Validate() error {
	if p.WeightLbs <= 0 {
		return fmt.Errorf("%w: got %.1f lbs", ErrInvalidWeight, p.WeightLbs)
	}
	switch p.Sex {
	case SexMale, SexFemale:
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidSex, p.Sex)
	}
}

// Drink is a single recorded beverage. Immutable once recorded; lives for the
// session and is cleared only by a session reset.
type Drink struct {
	// ID uniquely identifies the record within the session.
	ID string

	// Type is the resolved catalog label ("beer", "wine", ...).
	Type string

	// VolumeOz is the serving volume in US fluid ounces.
	VolumeOz float64

	// AlcoholPercent is the strength as a percentage in (0, 100].
	AlcoholPercent float64

	// ConsumedAt is the timestamp the drink was logged.
	ConsumedAt time.Time
}

// NewDrink validates and records a drink of the given strength.
func NewDrink(drinkType string, volumeOz, alcoholPercent float64, consumedAt time.Time) (Drink, error) {
	if volumeOz <= 0 {
		return Drink{}, fmt.Errorf("%w: got %.2f oz", ErrInvalidVolume, volumeOz)
	}
	if alcoholPercent <= 0 || alcoholPercent > 100 {
		return Drink{}, fmt.Errorf("%w: got %.2f", ErrInvalidPercent, alcoholPercent)
	}
	return Drink{
		ID:             "drk_" + uuid.New().String()[:22],
		Type:           drinkType,
		VolumeOz:       volumeOz,
		AlcoholPercent: alcoholPercent,
		ConsumedAt:     consumedAt,
	}, nil
}
