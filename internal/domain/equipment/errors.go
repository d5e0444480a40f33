package equipment

import "errors"

var (
	ErrEquipmentNotFound      = errors.New("equipment not found")
	ErrEquipmentAlreadyExists = errors.New("equipment code already exists at this location")
	ErrInvalidStatus          = errors.New("invalid equipment status")
)
