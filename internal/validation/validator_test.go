package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Rate  int32  `json:"rate" validate:"required,gt=0"`
	Note  string `json:"note" validate:"max=10"`
}

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		details := Struct(samplePayload{Email: "ann@test.com", Rate: 5})
		assert.Nil(t, details)
	})

	t.Run("Errors Keyed By JSON Name", func(t *testing.T) {
		details := Struct(samplePayload{Email: "not-an-email", Rate: 0, Note: "far too long note"})
		assert.Equal(t, "must be a valid email address", details["email"])
		assert.Equal(t, "is required", details["rate"])
		assert.Equal(t, "must be at most 10 characters", details["note"])
	})
}
