package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.00 KB", FormatSize(1024))
	assert.Equal(t, "1.50 KB", FormatSize(1536))
	assert.Equal(t, "2.00 MB", FormatSize(2*1024*1024))
	assert.Equal(t, "3.00 GB", FormatSize(3*1024*1024*1024))
	assert.Equal(t, "0 B", FormatSize(0))
}
