package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelper(t *testing.T) {
	h := NewHelperWithTitle("Jovies")
	assert.Equal(t, "Jovies", h.Title())
	assert.Equal(t, "/assets/css/main.css", h.Asset("/css/main.css"))
	assert.Equal(t, "165,000,000", h.Comma(165000000))
	assert.Equal(t, "7.8", h.Rating(7.83))
	assert.Equal(t, "7", h.Rating(7))
	assert.Equal(t, "2h 35m", h.Runtime(155))
	assert.Equal(t, "45m", h.Runtime(45))
	assert.Equal(t, "", h.Runtime(0))
}
