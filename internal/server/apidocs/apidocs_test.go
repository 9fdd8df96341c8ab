package apidocs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDocumentDescribesRoutes(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(Document, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	want := map[string]string{
		"/auth/register": "post",
		"/auth/login":    "post",
		"/auth/refresh":  "post",
		"/auth/logout":   "post",
		"/me":            "get",
	}
	assert.Len(t, doc.Paths, len(want))
	for path, method := range want {
		assert.Contains(t, doc.Paths[path], method, path)
	}
}
