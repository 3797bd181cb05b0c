package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLauncherUsesPlatformDefault(t *testing.T) {
	l := NewLauncher("")
	assert.NotEmpty(t, l.opener)
}

func TestNewLauncherHonorsOverride(t *testing.T) {
	l := NewLauncher("firefox")
	assert.Equal(t, "firefox", l.opener)
}

func TestOpenFailsForMissingOpener(t *testing.T) {
	l := NewLauncher("definitely-not-a-real-binary-xyz")
	err := l.Open("https://www.tabnews.com.br")
	assert.Error(t, err)
}
