package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quote-service/internal/models"
	"quote-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// ============================================================================
// QUOTE
// ============================================================================

func TestQuoteCommand_Defaults(t *testing.T) {
	out, err := runCLI(t, "", "quote",
		"--product", "Vintage Tractor", "--risk", "high", "--age", "18",
		"--plan", "premium", "--modifications=false", "--pricing", "")
	require.NoError(t, err)

	var result pricing.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(315), result.MonthlyPremium)
	assert.Equal(t, int64(3780), result.AnnualPremium)
	assert.Equal(t, "vintage", result.Breakdown.AgeBracket)
	assert.Equal(t, "tractor-2025.1", result.PricingVersion)
}

func TestQuoteCommand_PricingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: test-rules\nannual_discount_factor: 0.5\n"), 0o644))

	out, err := runCLI(t, "", "quote",
		"--product", "Compact Tractor", "--risk", "low", "--age", "5",
		"--plan", "basic", "--modifications=false", "--pricing", path)
	require.NoError(t, err)

	var result pricing.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(25), result.MonthlyPremium)
	assert.Equal(t, int64(150), result.AnnualPremium)
	assert.Equal(t, "test-rules", result.PricingVersion)
}

func TestQuoteCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "", "quote", "--risk", "low", "--age", "1", "--plan", "gold", "--pricing", "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = runCLI(t, "", "quote", "--risk", "low", "--age", "-1", "--plan", "basic", "--pricing", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = runCLI(t, "", "quote", "--risk", "low", "--age", "1", "--plan", "basic",
		"--pricing", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// ============================================================================
// CATEGORIZE
// ============================================================================

func TestCategorizeCommand(t *testing.T) {
	out, err := runCLI(t, "", "categorize", "User has a Kubota", "User wants the premium plan")
	require.NoError(t, err)

	var ctx models.MemoryContext
	require.NoError(t, json.Unmarshal([]byte(out), &ctx))
	assert.Equal(t, "Tractor Type: Kubota\nInsurance Interest: the premium plan", ctx.Context)
	assert.Len(t, ctx.Facts, 2)
}

func TestCategorizeCommand_Stdin(t *testing.T) {
	out, err := runCLI(t, "They have a Fordson\n\n", "categorize")
	require.NoError(t, err)

	var ctx models.MemoryContext
	require.NoError(t, json.Unmarshal([]byte(out), &ctx))
	assert.Equal(t, []string{"Fordson"}, ctx.Entities.Types)
}
