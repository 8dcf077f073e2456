package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/encoder"
	"github.com/wippyai/textcore/locale"
	"github.com/wippyai/textcore/ustring"
)

type inspectCmd struct {
	gs          *globalState
	interactive bool
}

// charInfo describes how one character encodes on its own.
type charInfo struct {
	char  textcore.Char
	bytes []byte
	tier  string
}

func tierOf(st encoder.Stats) string {
	switch {
	case st.Dropped > 0:
		return "dropped"
	case st.Substituted > 0:
		return "question mark"
	case st.Replaced > 0:
		return "replacement"
	}
	return "exact"
}

func inspectString(s *ustring.String, loc locale.Locale) ([]charInfo, error) {
	infos := make([]charInfo, 0, s.Len())
	for c := range s.All() {
		one := ustring.New()
		one.Append(c)
		data, stats, err := one.Encode(loc)
		if err != nil {
			return nil, err
		}
		infos = append(infos, charInfo{char: c, bytes: data, tier: tierOf(stats)})
	}
	return infos, nil
}

func displayChar(c textcore.Char) string {
	r := rune(c)
	if c.Valid() && unicode.IsPrint(r) {
		return string(r)
	}
	return strings.Trim(strconv.QuoteRune(r), "'")
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}

func renderTable(infos []charInfo) string {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			displayChar(info.char),
			fmt.Sprintf("U+%04X", uint32(info.char)),
			hexBytes(info.bytes),
			info.tier,
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CHAR", "CODE POINT", "BYTES", "TIER").
		Rows(rows...).
		String()
}

func (c *inspectCmd) run(cmd *cobra.Command, args []string) error {
	loc, err := c.gs.resolveLocale()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if c.interactive {
		return runInteractive(loc, text)
	}
	if len(args) == 0 {
		data, err := c.gs.readInput("")
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	infos, err := inspectString(ustring.FromUTF8(text, c.gs.bufferOptions()...), loc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "locale %s, codec %s\n%s\n",
		loc.Name(), loc.Codec().Name(), renderTable(infos))
	return err
}

func getCmdInspect(gs *globalState) *cobra.Command {
	c := &inspectCmd{gs: gs}

	cmd := &cobra.Command{
		Use:   "inspect [text...]",
		Short: "Show how each character encodes in the locale",
		Long: `Show every character with its code point, the bytes it encodes to in
the locale's encoding, and which fallback produced them. Text is read from
the arguments, or from stdin when there are none.`,
		RunE: c.run,
	}

	cmd.Flags().BoolVarP(&c.interactive, "interactive", "i", false, "interactive mode with TUI")
	return cmd
}
