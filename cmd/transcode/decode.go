package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/textcore/charset"
	"github.com/wippyai/textcore/ustring"
)

type decodeCmd struct {
	gs    *globalState
	to    string
	input string
}

func (c *decodeCmd) run(cmd *cobra.Command, _ []string) error {
	to, err := charset.ParseEncoding(c.to)
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

	s, err := ustring.FromLocale(data, loc, c.gs.bufferOptions()...)
	if err != nil {
		return err
	}
	if s.Invalid() > 0 {
		c.gs.logger.Warn("undecodable bytes replaced",
			zap.String("codec", loc.Codec().Name()), zap.Int("count", s.Invalid()))
	}

	out, err := s.Bytes(to)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func getCmdDecode(gs *globalState) *cobra.Command {
	c := &decodeCmd{gs: gs}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode locale-encoded bytes to Unicode text",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	cmd.Flags().StringVarP(&c.to, "to", "t", "utf-8", "output encoding: utf-8, utf-16le, utf-16be, utf-32le, utf-32be")
	cmd.Flags().StringVarP(&c.input, "input", "i", "", "input file (default stdin)")
	return cmd
}
