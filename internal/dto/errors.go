package dto

import "errors"

var ErrInvalidPriority = errors.New("priority must be one of all, high, medium or low")
