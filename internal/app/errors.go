package app

import (
	"fmt"

	"github.com/sandeepkv93/assistd/internal/model"
)

func errInvalidTheme(name string) error {
	return fmt.Errorf("%w: unknown theme %q", model.ErrValidation, name)
}
