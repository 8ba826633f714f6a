package render

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		templateStr string
		data        any
		expected    string
		errContains string
	}{
		{
			name:        "struct data",
			templateStr: "Hello, {{ .Name }}!",
			data:        struct{ Name string }{Name: "Alice"},
			expected:    "Hello, Alice!",
		},
		{
			name:        "helpers",
			templateStr: "{{ pascalCase .n }} {{ snakeCase .n }} {{ quote .n }}",
			data:        map[string]any{"n": "userID"},
			expected:    `UserID user_id "userID"`,
		},
		{
			name:        "syntax error",
			templateStr: "{{ .Name }",
			errContains: "failed to parse template",
		},
		{
			name:        "execution error",
			templateStr: "{{ .Missing.Field }}",
			data:        struct{}{},
			errContains: "failed to render template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.RenderString(tt.name, tt.templateStr, tt.data)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestRenderString_Caches(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("greeting", "one", nil)
	require.NoError(t, err)

	// same name, different text: the cached template wins
	out, err := r.RenderString("greeting", "two", nil)
	require.NoError(t, err)
	assert.Equal(t, "one", string(out))
	assert.Len(t, r.cache, 1)
}

func TestRenderFS(t *testing.T) {
	fsys := fstest.MapFS{
		"tmpl/hello.tmpl": {Data: []byte("hi {{ . }}")},
		"tmpl/code.tmpl":  {Data: []byte("package {{ . }}\n\nvar   x=1\n")},
		"tmpl/bad.tmpl":   {Data: []byte("package {{ . }}\nfunc {\n")},
	}
	r := NewRenderer()

	out, err := r.RenderFS(fsys, "tmpl/hello.tmpl", "there")
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(out))

	code, err := r.RenderGo(fsys, "tmpl/code.tmpl", "gen")
	require.NoError(t, err)
	assert.Equal(t, "package gen\n\nvar x = 1\n", string(code))

	_, err = r.RenderGo(fsys, "tmpl/bad.tmpl", "gen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Go")

	_, err = r.RenderFS(fsys, "tmpl/missing.tmpl", nil)
	require.Error(t, err)
}

func TestCaseHelpers(t *testing.T) {
	tests := []struct {
		in, pascal, camel, snake string
	}{
		{"user_name", "UserName", "userName", "user_name"},
		{"UserName", "UserName", "userName", "user_name"},
		{"HTTPServer", "HTTPServer", "httpServer", "http_server"},
		{"user_id", "UserID", "userID", "user_id"},
		{"my-project", "MyProject", "myProject", "my_project"},
		{"GEN", "GEN", "gen", "gen"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in))
			assert.Equal(t, tt.camel, CamelCase(tt.in))
			assert.Equal(t, tt.snake, SnakeCase(tt.in))
		})
	}
}

func TestComment(t *testing.T) {
	assert.Equal(t, "// one\n// two", Comment("one\ntwo\n"))
	assert.Empty(t, Comment("  "))
}

func TestDict(t *testing.T) {
	m, err := Dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = Dict("odd")
	assert.Error(t, err)

	_, err = Dict(1, 2)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "x", Default("x", nil))
	assert.Equal(t, "x", Default("x", ""))
	assert.Equal(t, 0, Default("x", 0))
}
