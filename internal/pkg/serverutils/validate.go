package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var requestValidator = validator.New()

// RequestError is a malformed request body or query. It maps to 400.
type RequestError struct {
	Messages []string
}

func (e *RequestError) Error() string {
	return "invalid request: " + strings.Join(e.Messages, "; ")
}

// ValidateRequest checks the validate tags of a request DTO.
func ValidateRequest(req interface{}) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestError{Messages: []string{err.Error()}}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return &RequestError{Messages: messages}
}
