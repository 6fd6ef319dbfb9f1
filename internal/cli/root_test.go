package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "academy", cmd.Use)
	assert.Contains(t, cmd.Long, "training center")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"student", "course", "booking", "attendance", "backup", "db", "report"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestSubcommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	groups := map[string][]string{
		"student":    {"add", "list"},
		"course":     {"add", "list", "set-price"},
		"booking":    {"add", "list", "delete"},
		"attendance": {"record", "list", "scan"},
		"backup":     {"export", "import"},
		"db":         {"wipe"},
		"report":     {"payments"},
	}

	for group, subs := range groups {
		for _, sub := range subs {
			subCmd, _, err := cmd.Find([]string{group, sub})
			require.NoError(t, err, "%s %s should exist", group, sub)
			assert.Equal(t, sub, subCmd.Name())
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestStudentAddFlags(t *testing.T) {
	cmd := NewRootCommand()
	addCmd, _, err := cmd.Find([]string{"student", "add"})
	require.NoError(t, err)

	for _, name := range []string{"name", "age", "phone", "siblings", "address"} {
		assert.NotNil(t, addCmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "no", addCmd.Flags().Lookup("siblings").DefValue)
}

func TestReportPaymentsFlags(t *testing.T) {
	cmd := NewRootCommand()
	payCmd, _, err := cmd.Find([]string{"report", "payments"})
	require.NoError(t, err)

	outputFlag := payCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "payments.xlsx", outputFlag.DefValue)

	assert.NotNil(t, payCmd.Flags().Lookup("from"))
	assert.NotNil(t, payCmd.Flags().Lookup("to"))
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "student", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "denied", assert.AnError)))
}
