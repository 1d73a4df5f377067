// Command shcresconv tests, extracts and packs the TGX and GM1 resource
// files of Stronghold Crusader.
//
//	shcresconv test <file> [--test-tgx-to-text true]
//	shcresconv extract <source-file> <target-dir> [--preview true]
//	shcresconv pack <source-dir> <target-file>
//
// The coder behavior is adjusted with the --tgx-coder-* options; --log
// sets the log level (TRACE, DEBUG, INFO, WARNING, ERROR).
package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TheRedDaemon/shcresource"
)

// Option names, all taking a value: --<name> <value>.
const (
	optionLog              = "log"
	optionTgxToText        = "test-tgx-to-text"
	optionPreview          = "preview"
	optionTransparentTgx   = "tgx-coder-transparent-pixel-tgx-color"
	optionTransparentRaw   = "tgx-coder-transparent-pixel-raw-color"
	optionRepeatThreshold  = "tgx-coder-pixel-repeat-threshold"
	optionPaddingAlignment = "tgx-coder-padding-alignment"
)

var logLevels = map[string]zerolog.Level{
	"TRACE":   zerolog.TraceLevel,
	"DEBUG":   zerolog.DebugLevel,
	"INFO":    zerolog.InfoLevel,
	"WARNING": zerolog.WarnLevel,
	"ERROR":   zerolog.ErrorLevel,
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "shcresconv",
		Short:         "Convert the TGX and GM1 resource files of Stronghold Crusader",
		SilenceUsage:  true,
		SilenceErrors: true,
		// unrecognized option keys are tolerated
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString(optionLog)
			return configureLogging(level)
		},
	}

	flags := root.PersistentFlags()
	flags.String(optionLog, "INFO", "log level: TRACE, DEBUG, INFO, WARNING, ERROR")
	flags.String(optionTransparentTgx, "0xf81f", "marker color used for in-stream transparency detection")
	flags.String(optionTransparentRaw, "0x0000", "canvas value that means transparent")
	flags.String(optionRepeatThreshold, "3", "minimum run length for a repeat token")
	flags.String(optionPaddingAlignment, "4", "encoded stream length is padded to a multiple of this")

	testCmd := &cobra.Command{
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		Use:                "test <file>",
		Short:              "Parse and validate a resource file",
		Args:               cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := coderOptions(cmd)
			if err != nil {
				return err
			}
			asText, err := boolOption(cmd, optionTgxToText)
			if err != nil {
				return err
			}
			return shcresource.Test(args[0], opt, cmd.OutOrStdout(), asText)
		},
	}
	testCmd.Flags().String(optionTgxToText, "false", "also print a token listing of every TGX stream")

	extractCmd := &cobra.Command{
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		Use:                "extract <source-file> <target-dir>",
		Short:              "Decode a resource file into a directory",
		Args:               cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := coderOptions(cmd)
			if err != nil {
				return err
			}
			preview, err := boolOption(cmd, optionPreview)
			if err != nil {
				return err
			}
			return shcresource.Extract(args[0], args[1], shcresource.ExtractOptions{
				Coder:         opt,
				WritePreviews: preview,
			})
		},
	}
	extractCmd.Flags().String(optionPreview, "false", "also write PNG and BMP previews of every image")

	packCmd := &cobra.Command{
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		Use:                "pack <source-dir> <target-file>",
		Short:              "Encode an extracted directory back into a resource file",
		Args:               cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := coderOptions(cmd)
			if err != nil {
				return err
			}
			return shcresource.Pack(args[0], args[1], opt)
		},
	}

	root.AddCommand(testCmd, extractCmd, packCmd)
	return root
}

func configureLogging(level string) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	parsed, ok := logLevels[strings.ToUpper(level)]
	if !ok {
		return errors.Errorf("unknown log level %q", level)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

// coderOptions collects the --tgx-coder-* option values.
func coderOptions(cmd *cobra.Command) (shcresource.CoderOptions, error) {
	opt := shcresource.DefaultCoderOptions()

	tgxColor, err := uint16Option(cmd, optionTransparentTgx)
	if err != nil {
		return opt, err
	}
	opt.TransparentPixelTgxColor = tgxColor

	rawColor, err := uint16Option(cmd, optionTransparentRaw)
	if err != nil {
		return opt, err
	}
	opt.TransparentPixelRawColor = rawColor

	threshold, err := intOption(cmd, optionRepeatThreshold)
	if err != nil {
		return opt, err
	}
	if threshold < 1 {
		return opt, errors.Errorf("option %s must be at least 1", optionRepeatThreshold)
	}
	opt.PixelRepeatThreshold = threshold

	alignment, err := intOption(cmd, optionPaddingAlignment)
	if err != nil {
		return opt, err
	}
	if alignment < 1 {
		return opt, errors.Errorf("option %s must be at least 1", optionPaddingAlignment)
	}
	opt.PaddingAlignment = alignment

	return opt, nil
}

func uint16Option(cmd *cobra.Command, name string) (uint16, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "option %s", name)
	}
	return uint16(v), nil
}

func intOption(cmd *cobra.Command, name string) (int, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "option %s", name)
	}
	return v, nil
}

func boolOption(cmd *cobra.Command, name string) (bool, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Wrapf(err, "option %s", name)
	}
	return v, nil
}
