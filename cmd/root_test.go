package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Structure verifies basic root command setup.
func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "taxdb", rootCmd.Use,
		"Command name should be taxdb")
	assert.NotNil(t, rootCmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.True(t, rootCmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, rootCmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestRootCmd_Subcommands verifies subcommand registration.
func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["create"],
		"create subcommand should be registered")
	assert.True(t, names["populate"],
		"populate subcommand should be registered")
}

// TestPopulateCmd_Subcommands verifies taxa and accessions
// are nested under populate.
func TestPopulateCmd_Subcommands(t *testing.T) {
	populateCmd := getPopulateCmd()

	names := make(map[string]bool)
	for _, sub := range populateCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["taxa"],
		"taxa subcommand should be registered")
	assert.True(t, names["accessions"],
		"accessions subcommand should be registered")
}

// TestTaxaCmd_Flags verifies flags of the taxa command.
func TestTaxaCmd_Flags(t *testing.T) {
	taxaCmd := getTaxaCmd()

	for _, name := range []string{
		"nodes", "names", "no-canonical", "jobs",
	} {
		flag := taxaCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s should exist", name)
	}
}

// TestAccessionsCmd_Flags verifies flags of the accessions
// command.
func TestAccessionsCmd_Flags(t *testing.T) {
	accCmd := getAccessionsCmd()

	for _, name := range []string{
		"chunk-size", "fast", "skip-verify",
	} {
		flag := accCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s should exist", name)
	}

	require.NotNil(t, accCmd.Args,
		"accessions should require file arguments")
}

// TestCreateCmd_ForceFlag verifies the force flag of create.
func TestCreateCmd_ForceFlag(t *testing.T) {
	createCmd := getCreateCmd()

	flag := createCmd.Flags().Lookup("force")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

// TestIndependentInstances verifies each getter returns a
// fresh command instance.
func TestIndependentInstances(t *testing.T) {
	cmd1 := getCreateCmd()
	cmd2 := getCreateCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each call should return a new instance")
}
