package routeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/routebind/route"
)

const yamlConfig = `
routes:
  - pattern: /users/{user}/dogs/{dog}
    scope_bindings: true
  - pattern: /owners/{user}/dogs/{dog}
    with_trashed: true
    binding_fields:
      dog: slug
`

const tomlConfig = `
[[routes]]
pattern = "/users/{user}/dogs/{dog}"
scope_bindings = true

[[routes]]
pattern = "/owners/{user}/dogs/{dog}"
with_trashed = true

[routes.binding_fields]
dog = "slug"
`

func TestParse(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		data   string
		format Format
	}{
		"yaml": {yamlConfig, FormatYAML},
		"toml": {tomlConfig, FormatTOML},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Parse([]byte(tc.data), tc.format)
			require.NoError(t, err)
			require.Len(t, cfg.Routes, 2)

			users, ok := cfg.Lookup("/users/:user/dogs/:dog")
			require.True(t, ok)
			assert.True(t, users.ScopeBindings)
			assert.False(t, users.WithTrashed)

			owners, ok := cfg.Lookup("owners/{user}/dogs/{dog}")
			require.True(t, ok)
			assert.True(t, owners.WithTrashed)
			assert.Equal(t, map[string]string{"dog": "slug"}, owners.BindingFields)

			_, ok = cfg.Lookup("/cats/{cat}")
			assert.False(t, ok)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(yamlConfig), Format("json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse([]byte("routes: ["), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte("routes = 1"), FormatTOML)
	assert.Error(t, err)

	duplicate := `
routes:
  - pattern: /users/{user}
  - pattern: /users/:user
`
	_, err = Parse([]byte(duplicate), FormatYAML)
	assert.ErrorContains(t, err, "configured twice")

	invalid := `
routes:
  - pattern: /files/*rest/more
`
	_, err = Parse([]byte(invalid), FormatYAML)
	assert.ErrorIs(t, err, route.ErrInvalidPattern)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	for _, path := range []string{
		write("routes.yaml", yamlConfig),
		write("routes.yml", yamlConfig),
		write("routes.toml", tomlConfig),
	} {
		cfg, err := Load(path)
		require.NoError(t, err, path)
		assert.Len(t, cfg.Routes, 2, path)
	}

	_, err := Load(write("routes.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)

	r := route.MustNew("/owners/:user/dogs/:dog", cfg.Options("/owners/:user/dogs/:dog")...)
	assert.False(t, r.EnforcesScopedBindings())
	assert.True(t, r.AllowsTrashedBindings())
	assert.Equal(t, "slug", r.BindingFieldFor("dog"))

	r = route.MustNew("/users/{user}/dogs/{dog}", cfg.Options("/users/{user}/dogs/{dog}")...)
	assert.True(t, r.EnforcesScopedBindings())
	assert.Empty(t, r.BindingFieldFor("dog"))

	assert.Empty(t, cfg.Options("/unknown"))
}

func TestConfig_Unindexed(t *testing.T) {
	t.Parallel()

	var nilCfg *Config
	_, ok := nilCfg.Lookup("/users/{user}")
	assert.False(t, ok)
	assert.Empty(t, nilCfg.Options("/users/{user}"))

	cfg := &Config{Routes: []RouteConfig{{Pattern: "/users/:user", ScopeBindings: true}}}
	rc, ok := cfg.Lookup("/users/{user}")
	require.True(t, ok)
	assert.True(t, rc.ScopeBindings)

	require.NoError(t, cfg.Validate())
	_, ok = cfg.Lookup("users/{user}")
	assert.True(t, ok)
}
