package models

import "errors"

// ErrInvalidProperty is returned when an upserted property fails boundary
// validation. The inventory is left unchanged in that case.
var ErrInvalidProperty = errors.New("invalid property")
