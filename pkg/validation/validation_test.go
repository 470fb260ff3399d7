package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FieldOfStudy string `json:"fieldOfStudy" validate:"notblank"`
	From         string `json:"from" validate:"notblank,isodate"`
	To           string `json:"to" validate:"omitempty,isodate"`
	Website      string `json:"website" validate:"omitempty,url"`
	Nickname     string `json:"nickname" validate:"omitempty,min=3"`
}

func TestCheck(t *testing.T) {
	v := New()

	t.Run("valid input", func(t *testing.T) {
		res := Check(v, sample{FieldOfStudy: "CS", From: "2020-01-01", To: "2021-01-01T00:00:00Z"})
		assert.True(t, res.IsValid)
		assert.Empty(t, res.Errors)
	})

	t.Run("errors keyed by json name", func(t *testing.T) {
		res := Check(v, sample{FieldOfStudy: "  ", From: "01/02/2020", Website: "example", Nickname: "ab"})
		assert.False(t, res.IsValid)
		assert.Equal(t, map[string]string{
			"fieldOfStudy": "Field of study field is required",
			"from":         "From date is invalid",
			"website":      "Not a valid URL",
			"nickname":     "Nickname must be at least 3 characters",
		}, res.Errors)
	})

	t.Run("first failure per field wins", func(t *testing.T) {
		res := Check(v, sample{FieldOfStudy: "CS"})
		assert.Equal(t, "From date field is required", res.Errors["from"])
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2019-06-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 6, 30, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2019-06-30T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("June 2019")
	assert.Error(t, err)
}

func TestFormatCamelCase(t *testing.T) {
	assert.Equal(t, "Field of study", formatCamelCase("fieldOfStudy"))
	assert.Equal(t, "Handle", formatCamelCase("handle"))
}
