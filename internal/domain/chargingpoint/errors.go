package chargingpoint

import "errors"

var (
	ErrChargingPointNotFound = errors.New("charging point not found")
)
