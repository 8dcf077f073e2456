package main

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/locale"
)

type testState struct {
	*globalState
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestState(stdin string) *testState {
	ts := &testState{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ts.globalState = &globalState{
		stdin:  strings.NewReader(stdin),
		stdout: ts.stdout,
		stderr: ts.stderr,
		isTTY:  func() bool { return false },
		conf:   textcore.DefaultConfig(),
	}
	return ts
}

func (ts *testState) execute(args ...string) error {
	cmd := newRootCmd(ts.globalState)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestEncodeCmd(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []byte
	}{
		{"C locale substitutes", "a中", []string{"--locale", "C"}, []byte("a?")},
		{"shift_jis", "日本", []string{"--locale", "ja_JP.SJIS"}, []byte{0x93, 0xFA, 0x96, 0x7B}},
		{"utf-16 input", "h\x00\x2d\x4e", []string{"--locale", "en_US.UTF-8", "--from", "utf-16le"}, []byte("h中")},
		{"force utf-8", "中", []string{"--locale", "C", "--force-utf8"}, []byte("中")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestState(tt.stdin)
			require.NoError(t, ts.execute(append([]string{"encode"}, tt.args...)...))
			assert.Equal(t, tt.want, ts.stdout.Bytes())
		})
	}
}

func TestEncodeCmd_LogsLossyConversion(t *testing.T) {
	ts := newTestState("a中b")
	require.NoError(t, ts.execute("encode", "--locale", "C"))
	assert.Contains(t, ts.stderr.String(), "lossy conversion")
	assert.Contains(t, ts.stderr.String(), `"substituted": 1`)
}

func TestEncodeCmd_HexDump(t *testing.T) {
	ts := newTestState("a中")
	require.NoError(t, ts.execute("encode", "--locale", "C", "--hex"))
	assert.Contains(t, ts.stdout.String(), "61 3f")

	ts = newTestState("a")
	ts.isTTY = func() bool { return true }
	require.NoError(t, ts.execute("encode", "--locale", "C"))
	assert.Contains(t, ts.stdout.String(), "|a|")
}

func TestEncodeCmd_LocaleFromEnvironment(t *testing.T) {
	t.Setenv("LC_ALL", "ja_JP.eucJP")
	ts := newTestState("日")
	require.NoError(t, ts.execute("encode"))
	assert.Equal(t, []byte{0xC6, 0xFC}, ts.stdout.Bytes())
}

func TestEncodeCmd_Errors(t *testing.T) {
	ts := newTestState("x")
	assert.Error(t, ts.execute("encode", "--locale", "en_US.KLINGON-8"))

	ts = newTestState("x")
	assert.Error(t, ts.execute("encode", "--locale", "C", "--from", "ebcdic"))

	ts = newTestState("x")
	assert.Error(t, ts.execute("encode", "--locale", "C", "--input", "/nonexistent/input"))
}

func TestDecodeCmd(t *testing.T) {
	ts := newTestState(string([]byte{0x93, 0xFA, 0x96, 0x7B}))
	require.NoError(t, ts.execute("decode", "--locale", "ja_JP.SJIS"))
	assert.Equal(t, "日本", ts.stdout.String())

	ts = newTestState("h\xe9")
	require.NoError(t, ts.execute("decode", "--locale", "de_DE.ISO-8859-1", "--to", "utf-16be"))
	assert.Equal(t, []byte{0x00, 'h', 0x00, 0xE9}, ts.stdout.Bytes())
}

func TestDecodeCmd_ReportsInvalid(t *testing.T) {
	ts := newTestState("a\xff")
	require.NoError(t, ts.execute("decode", "--locale", "en_US.UTF-8"))
	assert.Equal(t, "a�", ts.stdout.String())
	assert.Contains(t, ts.stderr.String(), "undecodable bytes replaced")
}

func TestInspectCmd(t *testing.T) {
	ts := newTestState("")
	require.NoError(t, ts.execute("inspect", "--locale", "C", "aé"))

	out := ts.stdout.String()
	assert.Contains(t, out, "codec ANSI_X3.4-1968")
	assert.Contains(t, out, "U+0061")
	assert.Contains(t, out, "U+00E9")
	assert.Contains(t, out, "exact")
	assert.Contains(t, out, "question mark")
}

func TestInspectCmd_Stdin(t *testing.T) {
	ts := newTestState("日\n")
	require.NoError(t, ts.execute("inspect", "--locale", "ja_JP.SJIS"))
	assert.Contains(t, ts.stdout.String(), "93 FA")
}

func TestLocalesCmd(t *testing.T) {
	ts := newTestState("")
	require.NoError(t, ts.execute("locales", "--locale", "C"))

	out := ts.stdout.String()
	assert.Contains(t, out, "* ANSI_X3.4-1968")
	assert.Contains(t, out, "  UTF-8")
	assert.Contains(t, out, "  ISO-2022-JP")
}

func TestVerboseEnablesDebug(t *testing.T) {
	ts := newTestState("x")
	require.NoError(t, ts.execute("encode", "--locale", "ja_JP.SJIS", "--verbose"))
	assert.Contains(t, ts.stderr.String(), "locale resolved")
}

func TestInteractiveModel(t *testing.T) {
	loc, err := locale.Parse("C")
	require.NoError(t, err)

	m := newInteractiveModel(loc, "a")
	require.NoError(t, m.err)
	assert.Len(t, m.infos, 1)
	assert.False(t, m.stats.Lossy())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("é")})
	assert.Len(t, m.infos, 2)
	assert.Len(t, m.encoded, 2)
	assert.Equal(t, 1, m.stats.Substituted)

	view := m.View()
	assert.Contains(t, view, "U+00E9")
	assert.Contains(t, view, "substituted 1")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
