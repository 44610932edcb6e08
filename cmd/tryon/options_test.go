package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOptionsFirstProduct(t *testing.T) {
	stdout, _, err := execute(t, "--products", exampleProducts, "options", "blush")
	require.NoError(t, err)
	require.Contains(t, stdout, "blush / BL-ROSE")
	require.Contains(t, stdout, "#e8a0a0, #d46a6a, #b84a4a")
	require.Contains(t, stdout, "matte, shimmer")
	require.Contains(t, stdout, "0, 1, 2, 3, 4")
}

func TestOptionsNamedProductAsYAML(t *testing.T) {
	stdout, _, err := execute(t, "--products", exampleProducts, "options", "scarves", "SC-SILK", "--format", "yaml")
	require.NoError(t, err)

	var view optionsView
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &view))
	require.Equal(t, "SC-SILK", view.Product)
	require.Equal(t, []string{"#1f3a93", "#f5f5dc"}, view.Colors)
	require.Equal(t, []string{"silk", "chiffon"}, optionValues(view.Fabrics))
	require.Empty(t, view.Textures)
}

func TestOptionsFamily(t *testing.T) {
	stdout, _, err := execute(t, "--products", exampleProducts, "options", "haircolor", "HC-HONEY")
	require.NoError(t, err)
	require.Contains(t, stdout, "blonde")
}

func TestOptionsErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "no products", args: []string{"options", "blush"}, want: "product fixture is required"},
		{name: "unknown category", args: []string{"--products", exampleProducts, "options", "lipstick"}, want: "lipstick"},
		{name: "unknown product", args: []string{"--products", exampleProducts, "options", "blush", "BL-NOPE"}, want: "BL-NOPE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}
