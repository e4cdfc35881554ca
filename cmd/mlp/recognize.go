package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pc "github.com/sharnoff/perceptron"
	"github.com/sharnoff/perceptron/climanager"
	"github.com/sharnoff/perceptron/store"
)

func recognizeCmd() *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "recognize",
		Short: "Prompt for inputs and print the network's outputs for them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if database != "" {
				c.Database = database
			}

			logger, err := newLogger()
			if err != nil {
				return errors.Wrapf(err, "Couldn't create logger")
			}
			defer logger.Sync()

			return recognize(c, os.Stdin, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "SQLite database, overriding the config")
	return cmd
}

func recognize(c config, in io.Reader, out io.Writer, logger *zap.Logger) error {
	db, err := store.OpenSQLite(c.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := pc.Reload(db, logger)
	if err != nil {
		logger.Warn("couldn't read sample log", zap.Error(err))
	} else if report.Valid > 0 {
		fmt.Fprintf(out, "Trained on %d logged samples; latest was %v\n", report.Valid, report.Latest.Datum.Inputs)
	}

	net, err := pc.Restore(db)
	if err != nil {
		return err
	}
	if net.InputSize() != len(c.Inputs) || net.OutputSize() != len(c.Outputs) {
		return errors.Errorf("Stored network has sizes %v, which doesn't fit the config", net.Sizes())
	}

	scale, err := loadScale(c.scalePath())
	if err != nil {
		return err
	}

	p := climanager.New(in, out)
	for {
		fmt.Fprintln(out, "Enter the inputs ('q' to quit):")
		inputs, quit, err := p.QueryVector(c.Inputs, nil)
		if err != nil || quit {
			return err
		}

		if scale != nil {
			if inputs, err = scale.Scale(inputs); err != nil {
				return err
			}
		}

		outs, err := net.Predict(inputs)
		if err != nil {
			return err
		}

		for i, name := range c.Outputs {
			fmt.Fprintf(out, "  %s: %.4f\n", name, outs[i])
		}
		if len(outs) > 1 {
			fmt.Fprintf(out, "Recognized: %s\n", c.Outputs[pc.Argmax(outs)])
		}

		again, quit, err := p.QueryTF("Recognize another? (y/n): ")
		if err != nil || quit || !again {
			return err
		}
	}
}
