package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ThresholdStatus classifies a total against the exemption limit.
type ThresholdStatus string

const (
	ThresholdNormal      ThresholdStatus = "normal"
	ThresholdApproaching ThresholdStatus = "approaching"
	ThresholdExceeded    ThresholdStatus = "exceeded"
)

var (
	ErrInvalidLimit = errors.New("exemption limit must be positive")
	ErrInvalidRatio = errors.New("approaching ratio must be between 0 and 1")
)

// ThresholdPolicy is the configured exemption cap and the fraction of it at
// which an early warning is raised.
type ThresholdPolicy struct {
	Limit            decimal.Decimal
	ApproachingRatio decimal.Decimal
}

// Validate checks the policy is usable.
func (p ThresholdPolicy) Validate() error {
	if !p.Limit.IsPositive() {
		return ErrInvalidLimit
	}
	if !p.ApproachingRatio.IsPositive() || p.ApproachingRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidRatio
	}
	return nil
}

// ApproachingBoundary is the total above which the status is approaching.
func (p ThresholdPolicy) ApproachingBoundary() decimal.Decimal {
	return p.Limit.Mul(p.ApproachingRatio)
}

// Classify evaluates exceeded first, then approaching.
func (p ThresholdPolicy) Classify(total decimal.Decimal) ThresholdStatus {
	if total.GreaterThan(p.Limit) {
		return ThresholdExceeded
	}
	if total.GreaterThan(p.ApproachingBoundary()) {
		return ThresholdApproaching
	}
	return ThresholdNormal
}

// Headroom is limit minus total. Negative once the limit is exceeded.
func (p ThresholdPolicy) Headroom(total decimal.Decimal) decimal.Decimal {
	return p.Limit.Sub(total)
}
