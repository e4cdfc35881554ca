package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	pc "github.com/sharnoff/perceptron"
	"github.com/sharnoff/perceptron/hyperparams"
	"github.com/sharnoff/perceptron/initializers"
)

// config is the YAML file given to both subcommands. An example:
//
//	inputs: [red, green, blue]
//	outputs: [warm, cool]
//	hidden: [6]
//	activations: [tanh, sigmoid]
//	learning-rate: 0.3
//	epochs: 10000
//	database: colors.db
//	normalize: true
//	data:
//	  - inputs: [255, 40, 0]
//	    outputs: [1, 0]
type config struct {
	// Names of the input and output values, used for prompts and reports
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`

	Hidden      []int    `yaml:"hidden"`
	Activations []string `yaml:"activations"`
	Initializer string   `yaml:"initializer"`
	Seed        int64    `yaml:"seed"`

	LearningRate  float64 `yaml:"learning-rate"`
	Epochs        int     `yaml:"epochs"`
	Clip          float64 `yaml:"clip"`
	SnapshotEvery int     `yaml:"snapshot-every"`
	ReportEvery   int     `yaml:"report-every"`

	// Database is the SQLite file holding the sample log and snapshots
	Database string `yaml:"database"`

	// Normalize scales every input column to [0, 1] before training. The fitted bounds are
	// written next to the database so that recognize can apply them too.
	Normalize bool `yaml:"normalize"`

	Data []sample `yaml:"data"`
}

type sample struct {
	Inputs  []float64 `yaml:"inputs"`
	Outputs []float64 `yaml:"outputs"`
}

func defaultConfig() config {
	return config{
		Initializer:   "fan-in",
		LearningRate:  0.3,
		Epochs:        10000,
		SnapshotEvery: 1000,
		ReportEvery:   1000,
		Database:      "perceptron.db",
	}
}

func loadConfig(path string) (config, error) {
	c := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, errors.Wrapf(err, "Couldn't open config file")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&c); err != nil {
		return c, errors.Wrapf(err, "Couldn't parse config file %s", path)
	}

	return c, c.check()
}

func (c config) check() error {
	if len(c.Inputs) == 0 || len(c.Outputs) == 0 {
		return errors.Errorf("Config must name at least one input and one output")
	} else if err := hyperparams.Check(c.LearningRate); err != nil {
		return errors.Wrapf(err, "Bad learning-rate")
	} else if c.Epochs < 0 {
		return pc.ErrNegativeEpochs
	}

	for i, s := range c.Data {
		if len(s.Inputs) != len(c.Inputs) {
			return errors.Wrapf(pc.DimensionMismatchError{Expected: len(c.Inputs), Given: len(s.Inputs), What: "inputs"}, "Sample %d", i)
		} else if len(s.Outputs) != len(c.Outputs) {
			return errors.Wrapf(pc.DimensionMismatchError{Expected: len(c.Outputs), Given: len(s.Outputs), What: "outputs"}, "Sample %d", i)
		}
	}

	return nil
}

func (c config) sizes() []int {
	sizes := append([]int{len(c.Inputs)}, c.Hidden...)
	return append(sizes, len(c.Outputs))
}

// options returns the construction options described by the config
func (c config) options() ([]pc.Option, error) {
	acts := make([]pc.Activation, len(c.Activations))
	for i, name := range c.Activations {
		var err error
		if acts[i], err = pc.ParseActivation(name); err != nil {
			return nil, err
		}
	}

	init, err := initializers.Lookup(c.Initializer)
	if err != nil {
		return nil, err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []pc.Option{pc.WithInitializer(init), pc.WithRand(rand.New(rand.NewSource(seed)))}
	if len(acts) != 0 {
		opts = append(opts, pc.WithActivations(acts...))
	}

	return opts, nil
}

func (c config) data() []pc.Datum {
	data := make([]pc.Datum, len(c.Data))
	for i, s := range c.Data {
		data[i] = pc.Datum{Inputs: s.Inputs, Outputs: s.Outputs}
	}

	return data
}

func (c config) scalePath() string {
	return c.Database + ".scale.yaml"
}

func saveScale(path string, m pc.MinMax) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "Couldn't encode input scaling")
	}

	if err = os.WriteFile(path, b, 0600); err != nil {
		return pc.PersistenceError{Op: "save scaling", Err: err}
	}

	return nil
}

// removeScale deletes the scaling file left by an earlier normalized run, if there is one
func removeScale(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return pc.PersistenceError{Op: "remove scaling", Err: err}
	}

	return nil
}

// loadScale returns nil if there is no scaling file
func loadScale(path string) (*pc.MinMax, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, pc.PersistenceError{Op: "load scaling", Err: err}
	}

	var m pc.MinMax
	if err = yaml.Unmarshal(b, &m); err != nil {
		return nil, pc.MalformedRecordError{Err: err}
	}

	return &m, nil
}
