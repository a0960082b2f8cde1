package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuizCommand(t *testing.T) {
	cmd := newQuizCommand()

	assert.Equal(t, "quiz [bank-id]", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("source"))
	assert.NotNil(t, cmd.Flags().Lookup("shuffle"))
}

func TestNewQuizCommand_MissingBank(t *testing.T) {
	withConfigFile(t, setupTestConfigFile(t, t.TempDir()))

	cmd := newQuizCommand()
	cmd.SetArgs([]string{"unit-99"})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestNewQuizCommand_RequiresBankArgument(t *testing.T) {
	cmd := newQuizCommand()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err)
}
