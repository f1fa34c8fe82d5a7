package xmlutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/xmlpath.v2"
)

const backupFixture = `<?xml version="1.0" encoding="UTF-8"?>
<smses count="1">
  <sms address="VM-HDFCBK" date="1677900000000" type="1" body="Rs.450.00 debited" />
</smses>`

func TestLoadXMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.xml")
	require.NoError(t, os.WriteFile(path, []byte(backupFixture), 0o644))

	root, err := LoadXMLFile(path)
	require.NoError(t, err)

	iter := xmlpath.MustCompile(XPathSms).Iter(root)
	require.True(t, iter.Next())
	assert.Equal(t, "VM-HDFCBK", AttrString(iter.Node(), xmlpath.MustCompile(XPathSmsAddress)))
}

func TestLoadXMLFileMissing(t *testing.T) {
	_, err := LoadXMLFile(filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseXMLMalformed(t *testing.T) {
	_, err := ParseXML(strings.NewReader("<smses><sms"))
	assert.Error(t, err)
}

func TestAttrStringMissingAttribute(t *testing.T) {
	root, err := ParseXML(strings.NewReader(backupFixture))
	require.NoError(t, err)

	iter := xmlpath.MustCompile(XPathSms).Iter(root)
	require.True(t, iter.Next())
	assert.Equal(t, "", AttrString(iter.Node(), xmlpath.MustCompile("@contact_name")))
}

func TestSetLogger(t *testing.T) {
	previous := log
	defer SetLogger(previous)

	custom := logrus.New()
	SetLogger(custom)
	assert.Same(t, custom, log)

	SetLogger(nil)
	assert.Same(t, custom, log, "nil logger is ignored")
}
