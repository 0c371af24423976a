package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	Name  string `validate:"valid_name,no_emoji"`
	Phone string `validate:"valid_phone"`
}

func TestCustomValidators(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(person{Name: "Anne-Marie O'Neil", Phone: "+358401234567"}))
	assert.NoError(t, v.Struct(person{}))
	assert.Error(t, v.Struct(person{Name: "R2D2"}))
	assert.Error(t, v.Struct(person{Name: "Bob 😀"}))
	assert.Error(t, v.Struct(person{Name: "Bob", Phone: "12-34"}))
}
