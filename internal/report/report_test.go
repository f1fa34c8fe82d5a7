package report

import (
	"os"
	"path/filepath"
	"testing"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteUnparsed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unparsed.yaml")
	w := NewWriter(logging.NewMockLogger())

	failures := []*parsererror.ExtractionFailure{
		{SmsID: "sms-1", Sender: "VM-HDFCBK", Reason: parsererror.ReasonNoAmount, RawSms: "Your OTP is 482913", Timestamp: 1677900000000},
		{SmsID: "sms-2", Sender: "AX-OFFERS", Reason: parsererror.ReasonNoType, RawSms: "Rs.100 cashback waiting"},
	}
	require.NoError(t, w.WriteUnparsed(path, failures))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		GeneratedAt string          `yaml:"generated_at"`
		Count       int             `yaml:"count"`
		Unparsed    []UnparsedEntry `yaml:"unparsed"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, 2, doc.Count)
	assert.NotEmpty(t, doc.GeneratedAt)
	require.Len(t, doc.Unparsed, 2)
	assert.Equal(t, "sms-1", doc.Unparsed[0].SmsID)
	assert.Equal(t, "no-amount", doc.Unparsed[0].Reason)
	assert.Equal(t, "Your OTP is 482913", doc.Unparsed[0].RawSms)
	assert.Equal(t, "2023-03-04T03:20:00Z", doc.Unparsed[0].Timestamp)
	assert.Empty(t, doc.Unparsed[1].Timestamp, "no receipt time recorded")
}

func TestWriteUnparsedEmptyRemovesStaleReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unparsed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 1\n"), 0644))

	w := NewWriter(logging.NewMockLogger())
	require.NoError(t, w.WriteUnparsed(path, nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteUnparsedEmptyNoReportIsFine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unparsed.yaml")
	w := NewWriter(logging.NewMockLogger())
	assert.NoError(t, w.WriteUnparsed(path, nil))
}

func TestWriteUnparsedCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reports", "unparsed.yaml")
	w := NewWriter(logging.NewMockLogger())

	failures := []*parsererror.ExtractionFailure{
		{SmsID: "sms-1", Sender: "VM-HDFCBK", Reason: parsererror.ReasonMalformedDate, RawSms: "Rs.100 debited on 99-99-2023"},
	}
	require.NoError(t, w.WriteUnparsed(path, failures))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
