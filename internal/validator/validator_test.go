package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationInput struct {
	Time   string `json:"time" validate:"required,hhmm"`
	Guests int    `json:"numberOfGuests" validate:"required,gte=1,lte=50"`
	Role   string `json:"role" validate:"omitempty,business-role"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&reservationInput{Time: "19:30", Guests: 2, Role: "operator"}))

	err := v.Validate(&reservationInput{Time: "7pm", Guests: 0, Role: "chef"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, []string{"numberOfGuests", "role", "time"}, vErr.Fields())
	assert.Equal(t, "Must be a time in the format HH:MM", vErr.Errors["time"])
	assert.Equal(t, "This field is required", vErr.Errors["numberOfGuests"])
}

func TestValidateHHMM_RejectsOutOfRange(t *testing.T) {
	v := New()
	assert.Error(t, v.Validate(&reservationInput{Time: "25:00", Guests: 1}))
	assert.Error(t, v.Validate(&reservationInput{Time: "9:30", Guests: 1}))
}
