package bankregistry

import (
	"os"
	"path/filepath"
	"testing"

	"pennywise/sms-ledger/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBanksFileMissingIsNotError(t *testing.T) {
	mock := logging.NewMockLogger()
	registry := New(mock)

	loaded, err := registry.LoadBanksFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, 0, loaded)
	assert.True(t, mock.HasEntry("WARN", "Banks file not found, using built-in table only"))
}

func TestLoadBanksFileShadowsBuiltins(t *testing.T) {
	dir := t.TempDir()
	banksFile := filepath.Join(dir, "banks.yaml")
	content := `banks:
  - bank_name: mybank
    display_name: My Bank
    sender_ids: [VM-HDFCBK, VM-MYBANK]
    patterns:
      merchant: '(?i)\bto\s+(\w+)'
      extra_debit_verbs: [swiped]
`
	require.NoError(t, os.WriteFile(banksFile, []byte(content), 0644))

	registry := NewBuiltin(logging.NewMockLogger())
	loaded, err := registry.LoadBanksFile(banksFile)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	// The user bank claims a sender id previously held by a built-in
	entry, ok := registry.FindBySender("VM-HDFCBK")
	require.True(t, ok)
	assert.Equal(t, "mybank", entry.Config.BankName)

	entry, ok = registry.FindBySender("VM-MYBANK")
	require.True(t, ok)
	assert.Contains(t, entry.Library().DebitVerbs, "swiped")
}

func TestLoadBanksFileInvalidPattern(t *testing.T) {
	dir := t.TempDir()
	banksFile := filepath.Join(dir, "banks.yaml")
	content := `banks:
  - bank_name: broken
    sender_ids: [VM-BROKEN]
    patterns:
      amount: '(unclosed'
`
	require.NoError(t, os.WriteFile(banksFile, []byte(content), 0644))

	registry := New(logging.NewMockLogger())
	_, err := registry.LoadBanksFile(banksFile)
	assert.Error(t, err)
}
