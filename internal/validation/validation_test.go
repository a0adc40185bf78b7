package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "Joel", v)
	Required("bio", "   ", v)
	assert.Equal(t, Violations{"bio": "required"}, v)
}

func TestEmail(t *testing.T) {
	v := Violations{}
	Email("email", "joel@example.com", v)
	Email("other", "not-an-email", v)
	Email("blank", "", v) // emptiness is Required's job
	assert.Equal(t, Violations{"other": "must_be_email"}, v)
}

func TestURL(t *testing.T) {
	good := "https://twitter.com/joel"
	bad := "nota url"
	v := Violations{}
	URL("twitter", &good, v)
	URL("bad", &bad, v)
	URL("nil", nil, v)
	assert.Equal(t, Violations{"bad": "must_be_url"}, v)
}

func TestIn(t *testing.T) {
	v := Violations{}
	In("role", "admin", []string{"user", "admin"}, v)
	In("other", "superuser", []string{"user", "admin"}, v)
	In("blank", "", []string{"user", "admin"}, v) // absent role is defaulted downstream
	assert.Equal(t, Violations{"other": "not_allowed"}, v)
}

func TestErrorMessageIsStable(t *testing.T) {
	v := Violations{"email": "required", "bio": "required"}
	assert.Equal(t, "validation failed: bio: required, email: required", v.Error())
}
