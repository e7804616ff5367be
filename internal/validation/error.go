package validation

import (
	"errors"
	"fmt"
)

type InputError struct {
	fields map[string][]string
}

func NewInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) FieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) AddError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

// Merge folds the fields of other into ie. A nil or non-input error is ignored.
func (ie *InputError) Merge(other error) {
	otherErr := IsInputError(other)
	if otherErr == nil {
		return
	}

	for field, msgs := range otherErr.fields {
		ie.fields[field] = append(ie.fields[field], msgs...)
	}
}

// OrNil returns ie when it carries at least one field.
func (ie *InputError) OrNil() error {
	if ie.FieldsCount() > 0 {
		return ie
	}

	return nil
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
