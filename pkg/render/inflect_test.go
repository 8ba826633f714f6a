package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlural(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"type":     "types",
		"package":  "packages",
		"class":    "classes",
		"box":      "boxes",
		"match":    "matches",
		"category": "categories",
		"day":      "days",
		"hero":     "heroes",
		"photo":    "photos",
		"knife":    "knives",
		"leaf":     "leaves",
		"cliff":    "cliffs",
		"Person":   "People",
		"PERSON":   "PEOPLE",
		"index":    "indices",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Plural(in))
		})
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0 types", Count(0, "type"))
	assert.Equal(t, "1 type", Count(1, "type"))
	assert.Equal(t, "3 classes", Count(3, "class"))
}

func TestPluralInTemplate(t *testing.T) {
	out, err := NewRenderer().RenderString("count", `{{ count 2 "entry" }}`, nil)
	assert.NoError(t, err)
	assert.Equal(t, "2 entries", string(out))
}
