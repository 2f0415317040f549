package listmonk

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var positive = validation.By(func(value interface{}) error {
	n, ok := value.(int)
	if !ok || n <= 0 {
		return errors.New("must be a positive integer")
	}
	return nil
})

// checkID rejects non-positive entity ids before any request is built.
func checkID(name string, id int) error {
	if err := validation.Validate(id, positive); err != nil {
		return invalidRequest(fmt.Errorf("%s: %w", name, err))
	}
	return nil
}

// checkListIDs rejects list id slices containing non-positive values.
func checkListIDs(ids []int) error {
	if err := validation.Validate(ids, validation.Each(positive)); err != nil {
		return invalidRequest(fmt.Errorf("lists: %w", err))
	}
	return nil
}
