package ocr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimModelJSON(t *testing.T) {
	inputs := []string{
		`{"company":"Acme"}`,
		"```json\n{\"company\":\"Acme\"}\n```",
		"```\n{\"company\":\"Acme\"}\n```",
		"  \n```json\n{\"company\":\"Acme\"}\n```  ",
	}
	for _, input := range inputs {
		assert.Equal(t, `{"company":"Acme"}`, TrimModelJSON(input))
	}
}

func TestUpstreamErrorMessage(t *testing.T) {
	err := &UpstreamError{Stage: "extract", Err: errors.New("quota exceeded")}
	assert.Contains(t, err.Error(), "extract")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.ErrorContains(t, err, "recognition backend")
}
