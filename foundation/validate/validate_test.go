package validate_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/fraudledger/foundation/validate"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

type model struct {
	Address string `json:"address" validate:"required"`
	Amount  string `json:"amount" validate:"required,numeric"`
	Status  string `json:"status" validate:"omitempty,oneof=pending verified flagged"`
}

func TestCheck(t *testing.T) {
	t.Log("Given the need to validate request models.")
	{
		t.Logf("\tTest 0:\tWhen the model is valid.")
		{
			if err := validate.Check(model{Address: "0xA", Amount: "10.5"}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould pass validation: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould pass validation.", success)
		}

		t.Logf("\tTest 1:\tWhen the model is invalid.")
		{
			err := validate.Check(model{Amount: "ten", Status: "done"})
			if !validate.IsFieldErrors(err) {
				t.Fatalf("\t%s\tTest 1:\tShould return field errors: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould return field errors.", success)

			fields := validate.GetFieldErrors(err).Fields()
			for _, name := range []string{"address", "amount", "status"} {
				if _, exists := fields[name]; !exists {
					t.Fatalf("\t%s\tTest 1:\tShould report the %q json field: %v", failed, name, fields)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould report the json field names.", success)
		}

		t.Logf("\tTest 2:\tWhen a field error is built by hand.")
		{
			err := validate.NewFieldsError("amount", errors.New("must not be negative"))
			if validate.GetFieldErrors(err).Fields()["amount"] != "must not be negative" {
				t.Fatalf("\t%s\tTest 2:\tShould carry the message.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould carry the message.", success)
		}
	}
}
