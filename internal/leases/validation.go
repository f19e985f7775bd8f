package leases

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/parklane-pm/parklane/internal/shared"
)

var validate = validator.New()

func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", shared.ErrValidation, err)
}
