package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonoton/go-circularbuffer/internal/tail"
)

const (
	linesFlag    = "lines"
	bytesFlag    = "bytes"
	quietFlag    = "quiet"
	logLevelFlag = "log-level"

	stdinName = "-"
)

type tailOptions struct {
	lines    int
	bytes    int
	quiet    bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &tailOptions{}

	cmd := &cobra.Command{
		Use:   "ringtail [flags] [file...]",
		Short: "Print the last lines or bytes of each file",
		Long: "ringtail prints the last lines (or bytes) of each file, or of standard input\n" +
			"when no file is given or the file is \"-\". Memory use is bounded by the\n" +
			"requested count, not by the size of the input.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLog(cmd.ErrOrStderr(), opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTail(cmd, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.lines, linesFlag, "n", 10, fmt.Sprintf("number of lines to print, at most %d", tail.MaxLines))
	cmd.Flags().IntVarP(&opts.bytes, bytesFlag, "c", 0, fmt.Sprintf("number of bytes to print, at most %d; overrides --lines when set", tail.MaxBytes))
	cmd.Flags().BoolVarP(&opts.quiet, quietFlag, "q", false, "never print headers giving file names")
	cmd.PersistentFlags().StringVarP(&opts.logLevel, logLevelFlag, "l", "warn", "sets ringtail log level")

	return cmd
}

func initLog(out io.Writer, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", logLevelFlag)
	}
	log.SetOutput(out)
	log.SetLevel(lvl)
	return nil
}

func runTail(cmd *cobra.Command, opts *tailOptions, args []string) error {
	if opts.lines < 0 || opts.bytes < 0 {
		return errors.New("counts must not be negative")
	}
	if opts.lines > tail.MaxLines {
		return errors.Errorf("--%s must be at most %d", linesFlag, tail.MaxLines)
	}
	if opts.bytes > tail.MaxBytes {
		return errors.Errorf("--%s must be at most %d", bytesFlag, tail.MaxBytes)
	}
	inputs := args
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}
	headers := !opts.quiet && len(inputs) > 1

	out := cmd.OutOrStdout()
	var result *multierror.Error
	printed := 0
	for _, name := range inputs {
		log.WithField("file", name).Debug("tailing input")
		r, closeInput, err := openInput(cmd.InOrStdin(), name)
		if err != nil {
			log.WithField("file", name).Errorf("failed to open input: %v", err)
			result = multierror.Append(result, err)
			continue
		}
		if headers {
			if printed > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", displayName(name))
		}
		printed++
		err = tailInput(out, r, name, opts)
		closeInput()
		if err != nil {
			log.WithField("file", name).Errorf("failed to tail input: %v", err)
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// openInput opens the named file, or returns stdin for "-".
func openInput(stdin io.Reader, name string) (io.Reader, func(), error) {
	if name == stdinName {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", name)
	}
	return f, func() { _ = f.Close() }, nil
}

func tailInput(out io.Writer, r io.Reader, name string, opts *tailOptions) error {
	if opts.bytes > 0 {
		data, err := tail.Bytes(r, opts.bytes)
		if err != nil {
			return errors.Wrapf(err, "tail %s", displayName(name))
		}
		_, err = out.Write(data)
		return err
	}

	lines, err := tail.Lines(r, opts.lines)
	if err != nil {
		return errors.Wrapf(err, "tail %s", displayName(name))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func displayName(name string) string {
	if name == stdinName {
		return "standard input"
	}
	return name
}
