package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

func TestRenderAudits(t *testing.T) {
	out := renderAudits([]models.TallyAudit{
		{ProposalNumber: 1, StoredYes: 10, ComputedYes: 10, Consistent: true},
		{ProposalNumber: 2, StoredYes: 99, ComputedYes: 10, Consistent: false},
	})
	assert.Contains(t, out, "MISMATCH")
	assert.Contains(t, out, "2 audited")
	assert.Contains(t, out, "1 mismatched")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`
database:
  dialect: sqlite
  path: %s
governance:
  admin: "0x00000000000000000000000000000000000000a0"
logging:
  level: error
`, filepath.Join(dir, "pulsar.db"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := execute(t, "migrate", "--config", path)
	require.NoError(t, err)

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "token=PLSR")

	_, err = execute(t, "init", "--config", path)
	assert.Error(t, err, "genesis runs once")

	out, err = execute(t, "audit", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 audited")
}
