package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/acs-demographics/internal/acs"
	"github.com/sells-group/acs-demographics/internal/config"
	"github.com/sells-group/acs-demographics/internal/dataset"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"collect", "variables", "datasets"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "acs-demos", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestCollectCommand_Flags(t *testing.T) {
	for _, name := range []string{"dataset-name", "geography", "acs-dataset", "year", "state", "var", "vars-file", "catalog-prefix", "format", "out"} {
		assert.NotNil(t, collectCmd.Flags().Lookup(name), "collect should have --%s flag", name)
	}

	flag := collectCmd.Flags().Lookup("dataset-name")
	require.NotNil(t, flag)
	assert.Equal(t, "population", flag.DefValue)

	flag = collectCmd.Flags().Lookup("geography")
	require.NotNil(t, flag)
	assert.Equal(t, "zip5", flag.DefValue)
}

func TestVariablesCommand_Flags(t *testing.T) {
	for _, name := range []string{"acs-dataset", "year", "prefix", "include-pr", "estimates-only", "format"} {
		assert.NotNil(t, variablesCmd.Flags().Lookup(name), "variables should have --%s flag", name)
	}
	assert.Equal(t, "false", variablesCmd.Flags().Lookup("include-pr").DefValue)
}

func TestNewACSClient(t *testing.T) {
	c := newACSClient(&config.Config{ACS: config.ACSConfig{
		BaseURL:     "http://localhost:9999/data/",
		TimeoutSecs: 5,
		MaxRetries:  1,
		APIKey:      "abc",
	}})
	assert.Equal(t, "http://localhost:9999/data", c.BaseURL())
	assert.Contains(t, c.URL(acs.Query{Year: 2022, Family: acs.ACS5, Fields: []string{"NAME"}, Scope: acs.StateScope("08")}), "key=abc")
}

func TestFormatDatasets(t *testing.T) {
	reg, err := dataset.NewRegistry(acs.NewClient(nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	formatDatasets(&buf, reg)

	out := buf.String()
	assert.Contains(t, out, "population")
	assert.Contains(t, out, "Population Demos")
	assert.Contains(t, out, "Zip5, State")
	assert.Contains(t, out, "acs/acs5/profile")
	assert.Contains(t, out, "acs1dp")
}
