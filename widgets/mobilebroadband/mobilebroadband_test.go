package mobilebroadband

import (
	"testing"

	mb "github.com/denysvitali/go-mobilebroadband"
	"github.com/stretchr/testify/assert"
)

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "Swisscom (4G) - 73%", formatStatus("%o (%t) - %q%", "Swisscom", int(mb.LTEAt), 72.6))
}

func TestTechnology(t *testing.T) {
	assert.Equal(t, "5G", technology(int(mb.FiveGNRAt)))
	assert.Equal(t, "H+", technology(int(mb.HSDPAAt)))
	assert.Equal(t, "G", technology(int(mb.GPRSAt)))
}
