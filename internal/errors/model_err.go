package errors

import "fmt"

type ModelError struct {
	model string
}

func NewModelError(model string) *ModelError {
	return &ModelError{
		model: model,
	}
}

func (me *ModelError) Error() string {
	return fmt.Sprintf("unknown model %q", me.model)
}

func (me *ModelError) Model() string {
	return me.model
}

func (me *ModelError) UnknownModel() {}
