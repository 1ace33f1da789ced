package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `validate:"required"`
	Capacity int    `validate:"gt=0"`
	Kind     string `validate:"oneof=a b"`
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Response
	}{
		{
			name: "validation errors",
			err:  validator.New().Struct(sample{Capacity: -1, Kind: "c"}),
			want: Error("field Name is a required field, field Capacity must be greater than 0, field Kind must be one of [a b]"),
		},
		{
			name: "invalid validation target",
			err:  validator.New().Struct(nil),
			want: Error("invalid request"),
		},
		{
			name: "other error",
			err:  errors.New("boom"),
			want: Error("invalid request"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Invalid(tt.err))
		})
	}
}
