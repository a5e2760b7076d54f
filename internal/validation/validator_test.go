package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/curatorapp/curator-server/internal/errors"
	"github.com/curatorapp/curator-server/internal/validation"
)

type itemRequest struct {
	Name  string   `json:"name" validate:"required,max=200"`
	Photo string   `json:"photo,omitempty" validate:"omitempty,url"`
	Tags  []string `json:"tags" validate:"dive,tag"`
}

type reviewRequest struct {
	Rating int    `json:"rating" validate:"rating"`
	Text   string `json:"text" validate:"max=5000"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(itemRequest{Name: "Hello", Tags: []string{"a", "b"}}))
	assert.NoError(t, v.Validate(reviewRequest{Rating: 5}))
}

func TestValidator_FieldDetails(t *testing.T) {
	v := validation.New()

	err := v.Validate(itemRequest{Photo: "not a url", Tags: []string{"ok", "a,b"}})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid URL", details["photo"])
	assert.Equal(t, "must be non-blank and contain no commas", details["tags[1]"])
}

func TestValidator_Rating(t *testing.T) {
	v := validation.New()

	for _, r := range []int{0, 6, -1} {
		err := v.Validate(reviewRequest{Rating: r})
		require.Error(t, err, "rating %d", r)

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "must be between 1 and 5", domainErr.Details.(map[string]string)["rating"])
	}
}
