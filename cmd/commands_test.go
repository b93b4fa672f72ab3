package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderergaurav/Varuna-marine/config"
	"github.com/wanderergaurav/Varuna-marine/models"
)

func useTestConfig(t *testing.T) {
	t.Helper()
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)
}

func TestBankAndApplyCommands(t *testing.T) {
	useTestConfig(t)

	// Each invocation bootstraps its own memory store, like separate CLI runs
	var out bytes.Buffer
	bank := BankCmd()
	bank.SetOut(&out)
	bank.SetArgs([]string{"R002", "2024"})
	require.NoError(t, bank.ExecuteContext(context.Background()))
	assert.Equal(t, "R002 2024 cb=0 gCO2eq\n", out.String())

	out.Reset()
	apply := ApplyCmd()
	apply.SetOut(&out)
	apply.SetArgs([]string{"R001", "2024"})
	require.NoError(t, apply.ExecuteContext(context.Background()))
	assert.Equal(t, "R001 2024 cb=-340956000 gCO2eq\n", out.String())
}

func TestBalanceCommand_Errors(t *testing.T) {
	useTestConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad year", []string{"R002", "soon"}, "year must be a positive integer"},
		{"unknown ship", []string{"NOPE", "2024"}, "no compliance data for ship NOPE in 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BankCmd()
			c.SetArgs(tt.args)
			c.SetOut(&bytes.Buffer{})
			c.SetErr(&bytes.Buffer{})
			err := c.ExecuteContext(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMigrateDownRejectsBadSteps(t *testing.T) {
	useTestConfig(t)

	c := MigrateCmd()
	c.SetArgs([]string{"down", "zero"})
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})

	err := c.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps must be a positive integer")
}

func TestPrintBalance(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printBalance(&out, "R004", 2025, models.NewComplianceBalance(decimal.NewFromInt(27483120))))
	assert.Equal(t, "R004 2025 cb=27483120 gCO2eq\n", out.String())
}

func TestConfigureLogging(t *testing.T) {
	assert.NoError(t, ConfigureLogging("debug", "json"))
	assert.NoError(t, ConfigureLogging("info", "text"))
	assert.Error(t, ConfigureLogging("loud", "text"))
	assert.Error(t, ConfigureLogging("info", "xml"))
}
