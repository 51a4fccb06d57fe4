package deprecation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeprecated(t *testing.T) {
	tests := []struct {
		key         string
		deprecated  bool
		replacement string
	}{
		{key: "baseurl", deprecated: true, replacement: "api_url"},
		{key: "limit", deprecated: true, replacement: "page_size"},
		{key: "api_url", deprecated: false},
		{key: "", deprecated: false},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			assert.Equal(t, test.deprecated, Deprecated(test.key))
			r, ok := Replacement(test.key)
			assert.Equal(t, test.replacement != "", ok)
			assert.Equal(t, test.replacement, r)
		})
	}
}
