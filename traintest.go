package perceptron

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/sharnoff/perceptron/costfuncs"
	"github.com/sharnoff/perceptron/hyperparams"
	"github.com/sharnoff/perceptron/utils"
)

// Datum is a single training sample: an input vector and the target output for it.
type Datum struct {
	// Inputs is the input of the network. It must have the same size as that of the network's
	// inputs.
	Inputs []float64 `json:"inputs"`

	// Outputs is the expected output of the network, given the input.
	Outputs []float64 `json:"outputs"`
}

// Fits indicates whether or not a given Datum's dimensions match those of the Network, allowing it
// to be used for training or testing.
func (d Datum) Fits(net *Network) bool {
	return len(d.Inputs) == net.InputSize() && len(d.Outputs) == net.OutputSize()
}

// checkFits returns the DimensionMismatchError describing why d does not fit, or nil.
func (d Datum) checkFits(net *Network) error {
	if len(d.Inputs) != net.InputSize() {
		return DimensionMismatchError{net.InputSize(), len(d.Inputs), "sample inputs"}
	} else if len(d.Outputs) != net.OutputSize() {
		return DimensionMismatchError{net.OutputSize(), len(d.Outputs), "sample outputs"}
	}

	return nil
}

// A wrapper for sending back the progress of the training or testing
type Result struct {
	// The epoch that has just finished, starting at 1
	Epoch int

	// Average cost per sample. While training, this is the average of the squared error summed
	// over the outputs, measured before each sample's update.
	Cost float64

	// The fraction correct, as per IsCorrect from TrainArgs. Only set for tests.
	Correct float64

	// The result is either from a test or a status update
	IsTest bool
}

// TrainArgs holds the arguments to Train. Only Data, Epochs and LearningRate are required.
type TrainArgs struct {
	Data []Datum

	// Epochs is the number of full passes over Data. Training always runs for every epoch; there
	// is no early stopping.
	Epochs int

	LearningRate HyperParameter

	// Cost is used to calculate the per-epoch error. It defaults to costfuncs.SquaredError()
	Cost CostFunction

	// ClipThreshold, if greater than zero, limits the norm of each Unit's gradient (weights and
	// bias together) for a single update.
	ClipThreshold float64

	// Samples, if not nil, is given every sample after it has been used to update the Network.
	Samples SampleLog

	// Snapshots, if not nil, receives a Snapshot of the Network every SnapshotEvery epochs, and
	// always after the final epoch.
	Snapshots     SnapshotStore
	SnapshotEvery int

	// TestData is the source of cross-validation data while training. ShouldTest indicates
	// whether or not testing should be done after the given epoch. Both may be nil.
	TestData   []Datum
	ShouldTest func(int) bool

	// IsCorrect returns whether or not the network outputs are correct, given the target outputs.
	// In order, it is given: outputs; targets. Defaults to CorrectRound.
	IsCorrect func([]float64, []float64) bool

	// Update is how testing and status updates are returned. It is called once at the end of each
	// epoch, and again for each test.
	Update func(Result)

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// Train adjusts the weights of the Network with online gradient descent, performing a single
// update for every sample of every epoch.
//
// Training is aborted by any error: an unsupported Activation, a sample that doesn't fit the
// Network, or a failure to persist samples or snapshots. In all of these cases the Network will
// have been partially trained.
func (net *Network) Train(args TrainArgs) error {
	// handle error cases and set defaults
	{
		if len(args.Data) == 0 {
			return ErrNoData
		} else if args.Epochs < 0 {
			return ErrNegativeEpochs
		} else if args.LearningRate == nil {
			return errors.Errorf("LearningRate is nil")
		}

		if err := net.Validate(); err != nil {
			return errors.Wrapf(err, "Can't train invalid network")
		}

		for i, d := range args.Data {
			if err := d.checkFits(net); err != nil {
				return errors.Wrapf(err, "Training sample %d does not fit network", i)
			}
		}

		if args.ShouldTest != nil {
			if len(args.TestData) == 0 {
				return errors.Errorf("ShouldTest is not nil but TestData is empty")
			}
			for i, d := range args.TestData {
				if err := d.checkFits(net); err != nil {
					return errors.Wrapf(err, "Test sample %d does not fit network", i)
				}
			}
		} else {
			args.ShouldTest = func(int) bool { return false }
		}

		if args.Cost == nil {
			args.Cost = costfuncs.SquaredError()
		}
		if args.IsCorrect == nil {
			args.IsCorrect = CorrectRound
		}
		if args.Update == nil {
			args.Update = func(Result) {}
		}
		if args.Logger == nil {
			args.Logger = zap.NewNop()
		}
	}

	log := args.Logger
	log.Debug("starting training",
		zap.Ints("sizes", net.Sizes()),
		zap.Int("samples", len(args.Data)),
		zap.Int("epochs", args.Epochs),
	)

	for epoch := 0; epoch < args.Epochs; epoch++ {
		lr := args.LearningRate.Value(epoch)

		var total float64
		for i, d := range args.Data {
			cost, err := net.step(d, lr, args.ClipThreshold, args.Cost)
			if err != nil {
				return errors.Wrapf(err, "Failed to train on sample %d of epoch %d", i, epoch+1)
			}
			total += cost

			if args.Samples != nil {
				if _, err := args.Samples.AppendSample(d); err != nil {
					return errors.Wrapf(asPersistence("append sample", err), "Epoch %d, sample %d", epoch+1, i)
				}
			}
		}

		avg := total / float64(len(args.Data))
		args.Update(Result{Epoch: epoch + 1, Cost: avg})
		log.Debug("finished epoch", zap.Int("epoch", epoch+1), zap.Float64("cost", avg), zap.Float64("learning-rate", lr))

		if args.ShouldTest(epoch + 1) {
			cost, correct, err := net.Test(args.TestData, args.IsCorrect)
			if err != nil {
				return errors.Wrapf(err, "Testing after epoch %d failed", epoch+1)
			}

			args.Update(Result{Epoch: epoch + 1, Cost: cost, Correct: correct, IsTest: true})
		}

		last := epoch+1 == args.Epochs
		if args.Snapshots != nil && (last || (args.SnapshotEvery > 0 && (epoch+1)%args.SnapshotEvery == 0)) {
			if err := args.Snapshots.SaveSnapshot(net.Snapshot()); err != nil {
				return errors.Wrapf(asPersistence("save snapshot", err), "Epoch %d", epoch+1)
			}
			log.Debug("saved snapshot", zap.Int("epoch", epoch+1))
		}
	}

	log.Info("finished training", zap.Int("epochs", args.Epochs))
	return nil
}

// Step performs a single online update of the Network with the given sample and learning rate,
// returning the squared error of the sample measured before the update.
func (net *Network) Step(d Datum, learningRate float64) (float64, error) {
	if err := d.checkFits(net); err != nil {
		return 0, err
	}

	return net.step(d, learningRate, 0, costfuncs.SquaredError())
}

func (net *Network) step(d Datum, lr, clip float64, cf CostFunction) (float64, error) {
	trace, err := net.Forward(d.Inputs)
	if err != nil {
		return 0, err
	}

	deltas, err := net.deltas(trace, d.Outputs)
	if err != nil {
		return 0, err
	}

	cost := cf.Cost(trace.Output(), d.Outputs)

	// every delta is calculated before any weights are changed
	for l, layer := range net.layers {
		for j, u := range layer.Units {
			g := lr * deltas[l][j]
			if clip > 0 {
				g *= clipScale(deltas[l][j], trace[l], clip)
			}

			floats.AddScaled(u.Weights, g, trace[l])
			u.Bias += g
		}
	}

	return cost, nil
}

// deltas returns the error term of every Unit, indexed the same as the Layers. The output Layer's
// deltas come from (target - output); every other Layer's come from the Layer after it, so they
// are calculated last to first.
func (net *Network) deltas(trace Trace, targets []float64) ([][]float64, error) {
	last := len(net.layers) - 1
	deltas := make([][]float64, len(net.layers))

	out := trace.Output()
	deltas[last] = make([]float64, len(out))
	for j, y := range out {
		d, err := net.layers[last].Activation.Deriv(y)
		if err != nil {
			return nil, err
		}

		deltas[last][j] = (targets[j] - y) * d
	}

	for l := last - 1; l >= 0; l-- {
		next := net.layers[l+1]
		deltas[l] = make([]float64, net.layers[l].Size())

		for j := range deltas[l] {
			var sum float64
			for k, u := range next.Units {
				sum += deltas[l+1][k] * u.Weights[j]
			}

			d, err := net.layers[l].Activation.Deriv(trace[l+1][j])
			if err != nil {
				return nil, err
			}

			deltas[l][j] = sum * d
		}
	}

	return deltas, nil
}

// clipScale returns the factor by which a Unit's update should be scaled so that the norm of its
// gradient is at most threshold.
func clipScale(delta float64, inputs []float64, threshold float64) float64 {
	norm := math.Abs(delta) * math.Sqrt(floats.Dot(inputs, inputs)+1)
	if norm > threshold {
		return threshold / norm
	}

	return 1
}

// Test returns the average cost (by costfuncs.MSE) and the fraction of samples for which isCorrect
// returns true. Test does not modify the Network; samples are evaluated concurrently.
func (net *Network) Test(data []Datum, isCorrect func([]float64, []float64) bool) (float64, float64, error) {
	if len(data) == 0 {
		return 0, 0, ErrNoData
	}
	if isCorrect == nil {
		isCorrect = CorrectRound
	}

	for i, d := range data {
		if err := d.checkFits(net); err != nil {
			return 0, 0, errors.Wrapf(err, "Test sample %d does not fit network", i)
		}
	}

	cost, correct := atomic.NewFloat64(0), atomic.NewFloat64(0)
	var testErr atomic.Error

	cf := costfuncs.MSE()
	f := func(i int) {
		outs, err := net.Predict(data[i].Inputs)
		if err != nil {
			testErr.Store(errors.Wrapf(err, "Failed to get outputs for test sample %d", i))
			return
		}

		cost.Add(cf.Cost(outs, data[i].Outputs))
		if isCorrect(outs, data[i].Outputs) {
			correct.Add(1)
		}
	}

	opsPerThread, threadsPerCPU := 1, 1
	utils.MultiThread(0, len(data), f, opsPerThread, threadsPerCPU)

	if err := testErr.Load(); err != nil {
		return 0, 0, err
	}

	n := float64(len(data))
	return cost.Load() / n, correct.Load() / n, nil
}

// Train constructs a Network with the given hidden Layer widths, sized to fit the samples, and
// trains it for the given number of epochs at a constant learning rate.
func Train(samples []Datum, learningRate float64, epochs int, hidden []int, opts ...Option) (*Network, error) {
	if len(samples) == 0 {
		return nil, ErrNoData
	}
	if err := hyperparams.Check(learningRate); err != nil {
		return nil, errors.Wrapf(err, "Bad learning rate")
	}

	sizes := append([]int{len(samples[0].Inputs)}, hidden...)
	sizes = append(sizes, len(samples[0].Outputs))

	net, err := New(sizes, opts...)
	if err != nil {
		return nil, err
	}

	args := TrainArgs{
		Data:         samples,
		Epochs:       epochs,
		LearningRate: hyperparams.Constant(learningRate),
	}

	if err = net.Train(args); err != nil {
		return nil, err
	}

	return net, nil
}
