// pkg/utils/logger_test.go

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	l := GetLogger("test")
	assert.True(t, l == GetLogger("test"))

	var out bytes.Buffer
	l.SetOutput(&out)
	l.WithField("session", "abc").WithField("chunk", 4).Warnf("hello %d", 1)
	line := out.String()
	assert.Contains(t, line, "test[")
	assert.Contains(t, line, "<WARNING>: hello 1 chunk=4 session=abc\n")

	out.Reset()
	l.Debugf("hidden")
	assert.Empty(t, out.String())
	SetLogLevel(logrus.DebugLevel)
	defer SetLogLevel(logrus.InfoLevel)
	l.Debugf("shown")
	assert.Contains(t, out.String(), "<DEBUG>: shown")
}

func TestSetOutFile(t *testing.T) {
	l := GetLogger("test-file")
	fn := filepath.Join(t.TempDir(), "out.log")
	require.NoError(t, SetOutFile(fn))
	defer l.SetOutput(os.Stderr)
	l.Infof("to file")
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "<INFO>: to file\n"))

	assert.Error(t, SetOutFile(filepath.Join(t.TempDir(), "no", "such", "dir.log")))
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/etc/hosts", ExpandHome("/etc/hosts"))
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ssh", "known_hosts"), ExpandHome("~/.ssh/known_hosts"))
}
