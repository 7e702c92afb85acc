// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvExample(t *testing.T) {
	t.Parallel()

	env := envExample()

	assert.True(t, strings.HasPrefix(env, envFileHeader))
	assert.Contains(t, env, "## Basic\n")
	assert.Contains(t, env, "\nCARETDOCS_PORT=\"3000\"\n")
	assert.Contains(t, env, "\nBRAND=\"careti\"\n")
	assert.Contains(t, env, "\n# GEMINI_TOKEN=\""+placeholderAPIKey+"\"\n")
	assert.Contains(t, env, "\n# CARETDOCS_TRANSLATE_DELAY=500ms\n")
	assert.Contains(t, env, "\n# CARETDOCS_LIMITER_PASS_LIST=\n")
	assert.NotContains(t, env, "## Build")
}

func TestYAMLExample(t *testing.T) {
	t.Parallel()

	content, err := yamlExample()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(content, yamlFileHeader))
	assert.Contains(t, content, "\ntranslator:\n")
	assert.Contains(t, content, "  apiKeys:\n")
	assert.Contains(t, content, "- "+placeholderAPIKey+"\n")

	// Everything but the section headers and the API key is commented out.
	var parsed struct {
		Translator struct {
			APIKeys []string `yaml:"apiKeys"`
			Model   string   `yaml:"model"`
		} `yaml:"translator"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(content), &parsed))
	assert.Equal(t, []string{placeholderAPIKey}, parsed.Translator.APIKeys)
	assert.Empty(t, parsed.Translator.Model)
}
