package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/textcore"
	"github.com/wippyai/textcore/buffer"
	"github.com/wippyai/textcore/encoder"
	"github.com/wippyai/textcore/locale"
)

// globalState is shared by every command.
type globalState struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	isTTY  func() bool

	conf   textcore.Config
	flags  globalFlags
	logger *zap.Logger
}

type globalFlags struct {
	locale    string
	forceUTF8 bool
	verbose   bool
}

func globalFlagSet(gs *globalState) *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.StringVarP(&gs.flags.locale, "locale", "l", gs.conf.Locale,
		"locale name, e.g. ja_JP.SJIS (default from LC_ALL, LC_CTYPE, LANG)")
	flags.BoolVar(&gs.flags.forceUTF8, "force-utf8", gs.conf.ForceUTF8,
		"ignore the locale codec and always use UTF-8")
	flags.BoolVarP(&gs.flags.verbose, "verbose", "v", false, "enable debug logging")
	return flags
}

func newRootCmd(gs *globalState) *cobra.Command {
	root := &cobra.Command{
		Use:           "transcode",
		Short:         "Convert text between Unicode and locale encodings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return gs.setupLogger()
		},
	}
	root.SetIn(gs.stdin)
	root.SetOut(gs.stdout)
	root.SetErr(gs.stderr)
	root.PersistentFlags().AddFlagSet(globalFlagSet(gs))

	root.AddCommand(
		getCmdEncode(gs),
		getCmdDecode(gs),
		getCmdInspect(gs),
		getCmdLocales(gs),
	)
	return root
}

func (gs *globalState) setupLogger() error {
	level, err := gs.conf.ZapLevel()
	if err != nil {
		return err
	}
	if gs.flags.verbose {
		level = zapcore.DebugLevel
	}

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	gs.logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(gs.stderr), level))
	locale.SetLogger(gs.logger.Named("locale"))
	encoder.SetLogger(gs.logger.Named("encoder"))
	return nil
}

// resolveLocale applies --locale and --force-utf8.
func (gs *globalState) resolveLocale() (locale.Locale, error) {
	var opts []locale.Option
	if gs.flags.forceUTF8 {
		opts = append(opts, locale.WithForceUTF8())
	}
	if gs.flags.locale == "" {
		return locale.FromEnvironment(opts...)
	}
	return locale.Parse(gs.flags.locale, opts...)
}

func (gs *globalState) bufferOptions() []buffer.Option {
	return []buffer.Option{buffer.WithChunkCapacity(gs.conf.ChunkCapacity)}
}

// readInput reads the named file, or stdin when path is empty or "-".
func (gs *globalState) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(gs.stdin)
	}
	return os.ReadFile(path)
}
