package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the entry invariants: non-empty id, round >= 1,
// rating within [1,5] and a known status.
func Validate(e Entry) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v violates %s", strings.ToLower(fe.Field()), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("invalid feedback entry %q: %s", e.ID, strings.Join(msgs, ", "))
}
