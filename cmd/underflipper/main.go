package main

import (
	"fmt"
	"os"
	"strconv"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
	"github.com/stoty/underflipper"
	"github.com/stoty/underflipper/internal/config"
	"github.com/stoty/underflipper/internal/env"
	"github.com/stoty/underflipper/internal/logger"
)

func init() {
	// Don't create a pdfcpu config file in the user's home
	pdfapi.DisableConfigDir()
}

func main() {
	if err := env.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring .env: %v\n", err)
	}
	if err := newRootCmd(config.GetConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "underflipper <input.pdf> <output.pdf> [flip-offset]",
		Short: "Rearrange warband rules into a double-sided printable PDF",
		Long: `Rearrange warband rules into a double-sided printable PDF.

The optional flip offset is a vertical offset in points (1/72th of an inch)
applied to the reverse side, to compensate for printer duplex misalignment.
Flags go before the file names, so that a negative offset is not taken
for a flag.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(2, 3)(cmd, args); err != nil {
				cmd.PrintErrln(cmd.UsageString())
				return err
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flipOffset := cfg.FlipOffset
			if len(args) == 3 {
				var err error
				if flipOffset, err = parseFlipOffset(args[2]); err != nil {
					return err
				}
			}
			return run(cfg, args[0], args[1], flipOffset)
		},
	}
	cmd.Flags().StringVar(&cfg.DebugDir, "debug-dir", cfg.DebugDir, "write every detection render to this directory")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "print detection details")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func parseFlipOffset(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", underflipper.ErrInvalidFlipOffset, s)
	}
	return f, nil
}

func run(cfg config.Config, input, output string, flipOffset float64) error {
	log := logger.New(cfg.IsProduction(), cfg.Verbose)
	defer log.Sync()

	log.Infof("input: %v", input)
	log.Infof("output: %v", output)
	log.Infof("vertical offset: %v pt", flipOffset)

	if cfg.DebugDir != "" {
		if err := os.MkdirAll(cfg.DebugDir, 0755); err != nil {
			log.Errorf("Creating debug directory: %v", err)
			return err
		}
	}

	layout := underflipper.DefaultLayout()
	doc, err := underflipper.NewDocumentFromFile(input, log)
	if err != nil {
		log.Error(err)
		return err
	}
	defer doc.Close()
	if err := doc.CheckTemplate(layout); err != nil {
		log.Error(err)
		return err
	}

	writer := underflipper.NewPDFWriter(input)
	defer writer.Close()
	opts := underflipper.Options{
		Layout:     layout,
		FlipOffset: flipOffset,
		DebugDir:   cfg.DebugDir,
		Log:        log,
	}
	if err := underflipper.Rearrange(doc, writer, output, opts); err != nil {
		log.Error(err)
		return err
	}
	log.Info("Done")
	return nil
}
