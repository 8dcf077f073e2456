package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/textcore/charset"
	"github.com/wippyai/textcore/encoder"
	"github.com/wippyai/textcore/ustring"
)

type encodeCmd struct {
	gs    *globalState
	from  string
	input string
	hex   bool
}

func (c *encodeCmd) run(cmd *cobra.Command, _ []string) error {
	from, err := charset.ParseEncoding(c.from)
	if err != nil {
		return err
	}
	loc, err := c.gs.resolveLocale()
	if err != nil {
		return err
	}
	data, err := c.gs.readInput(c.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	s, err := ustring.FromBytes(from, data, c.gs.bufferOptions()...)
	if err != nil {
		return err
	}
	if s.Invalid() > 0 {
		c.gs.logger.Warn("malformed input replaced",
			zap.String("encoding", from.String()), zap.Int("count", s.Invalid()))
	}

	out, stats, err := s.Encode(loc, encoder.WithLogger(c.gs.logger))
	if err != nil {
		return err
	}
	if stats.Lossy() {
		c.gs.logger.Info("lossy conversion",
			zap.String("locale", loc.Name()),
			zap.String("codec", loc.Codec().Name()),
			zap.Int("replaced", stats.Replaced),
			zap.Int("substituted", stats.Substituted),
			zap.Int("dropped", stats.Dropped))
	}

	if c.hex || c.gs.isTTY() {
		_, err = fmt.Fprint(cmd.OutOrStdout(), hex.Dump(out))
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func getCmdEncode(gs *globalState) *cobra.Command {
	c := &encodeCmd{gs: gs}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode Unicode text in the locale's encoding",
		Long: `Read Unicode text from stdin or --input and write it in the locale's
multibyte encoding. Characters the encoding cannot represent become U+FFFD,
then '?', and are dropped only if neither can be encoded.

A hex dump is printed instead of raw bytes when stdout is a terminal.`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	cmd.Flags().StringVarP(&c.from, "from", "f", "utf-8", "input encoding: utf-8, utf-16le, utf-16be, utf-32le, utf-32be")
	cmd.Flags().StringVarP(&c.input, "input", "i", "", "input file (default stdin)")
	cmd.Flags().BoolVarP(&c.hex, "hex", "x", false, "always print a hex dump")
	return cmd
}
