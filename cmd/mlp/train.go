package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pc "github.com/sharnoff/perceptron"
	"github.com/sharnoff/perceptron/hyperparams"
	"github.com/sharnoff/perceptron/store"
)

func trainCmd() *cobra.Command {
	var (
		epochs   int
		database string
		fresh    bool
		resume   bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a network on the samples in the config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("epochs") {
				c.Epochs = epochs
			}
			if database != "" {
				c.Database = database
			}

			logger, err := newLogger()
			if err != nil {
				return errors.Wrapf(err, "Couldn't create logger")
			}
			defer logger.Sync()

			return train(c, fresh, resume, logger)
		},
	}

	cmd.Flags().IntVarP(&epochs, "epochs", "e", 0, "number of epochs, overriding the config")
	cmd.Flags().StringVar(&database, "db", "", "SQLite database, overriding the config")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "clear the sample log before training")
	cmd.Flags().BoolVar(&resume, "resume", false, "continue from the latest snapshot instead of a new network")

	return cmd
}

func train(c config, fresh, resume bool, logger *zap.Logger) error {
	if len(c.Data) == 0 {
		return errors.Wrapf(pc.ErrNoData, "Config has no samples")
	}

	db, err := store.OpenSQLite(c.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if fresh {
		if err = db.ClearSamples(); err != nil {
			return err
		}
	}

	// the sample log is informational only
	if _, err = pc.Reload(db, logger); err != nil {
		logger.Warn("couldn't read sample log", zap.Error(err))
	}

	data := c.data()
	if c.Normalize {
		rows := make([][]float64, len(data))
		for i, d := range data {
			rows[i] = d.Inputs
		}

		scale, err := pc.FitMinMax(rows)
		if err != nil {
			return err
		}
		if data, err = pc.ScaleData(data, &scale, nil); err != nil {
			return err
		}
		if err = saveScale(c.scalePath(), scale); err != nil {
			return err
		}
	} else if err = removeScale(c.scalePath()); err != nil {
		return err
	}

	var net *pc.Network
	if resume {
		if net, err = pc.Restore(db); err != nil {
			return err
		}
		if !sameSizes(net.Sizes(), c.sizes()) {
			return errors.Errorf("Stored network has sizes %v, but config describes %v", net.Sizes(), c.sizes())
		}
	} else {
		opts, err := c.options()
		if err != nil {
			return err
		}
		if net, err = pc.New(c.sizes(), opts...); err != nil {
			return err
		}
	}

	isCorrect := pc.CorrectRound
	if len(c.Outputs) > 1 {
		isCorrect = pc.CorrectHighest
	}

	report := pc.Every(c.ReportEvery)
	args := pc.TrainArgs{
		Data:          data,
		Epochs:        c.Epochs,
		LearningRate:  hyperparams.Constant(c.LearningRate),
		ClipThreshold: c.Clip,
		Samples:       db,
		Snapshots:     db,
		SnapshotEvery: c.SnapshotEvery,
		IsCorrect:     isCorrect,
		Update: func(r pc.Result) {
			if report(r.Epoch) {
				fmt.Printf("epoch %d, cost %.6f\n", r.Epoch, r.Cost)
			}
		},
		Logger: logger,
	}

	logger.Info("training", zap.Ints("sizes", net.Sizes()), zap.String("run", db.Run()))
	if err = net.Train(args); err != nil {
		return err
	}

	cost, correct, err := net.Test(data, isCorrect)
	if err != nil {
		return err
	}

	fmt.Printf("Done: cost %.6f, %.1f%% correct\n", cost, correct*100)
	return nil
}

func sameSizes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
