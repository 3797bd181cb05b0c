package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("  user@example.com  "), "surrounding whitespace is trimmed")

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("two@@example.com"))
	assert.Error(t, ValidateEmail("user@nodot"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 300)+"@example.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername("alice_dev.42"))

	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("alice/../../etc"))
	assert.Error(t, ValidateUsername("alice bob"))
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("meu-primeiro-post"))

	assert.Error(t, ValidateSlug(""))
	assert.Error(t, ValidateSlug("slug?query=1"))
	assert.Error(t, ValidateSlug(strings.Repeat("s", 300)))
}
