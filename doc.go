// Package perceptron provides a small, self-contained multilayer perceptron: fully connected
// layers of sigmoid or tanh units, trained one sample at a time by backpropagation.
//
// Creating Networks
//
// Networks are constructed from a list of widths, the first of which is the width of the input:
//
//		net, err := pc.New([]int{2, 3, 1})
//
// For brevity, perceptron is abbreviated 'pc'.
//
// This gives a Network with two Layers: three hidden Units that each take two inputs, and a single
// output Unit that takes the three hidden values. Construction can be adjusted with Options:
//
//		net, err := pc.New([]int{3, 6, 3},
//			pc.WithActivations(pc.Tanh, pc.Sigmoid),
//			pc.WithInitializer(initializers.LeCun()),
//			pc.WithRand(rand.New(rand.NewSource(42))),
//		)
//
// Activations are a closed set. Anything other than Sigmoid or Tanh is reported as an
// UnsupportedActivationError, both at construction and if it is ever found later. Initial weights
// are drawn from an Initializer (see the subpackage "initializers") using the random source given
// by WithRand, so that a seeded source makes construction reproducible.
//
// Training and Testing
//
// All training is done with the type Datum, which contains two slices of float64 for the inputs and
// correct outputs for the Network, and with TrainArgs, which holds everything else:
//
//		err := net.Train(pc.TrainArgs{
//			Data:         data,
//			Epochs:       10000,
//			LearningRate: hyperparams.Constant(0.5),
//		})
//
// Each sample in each epoch performs a single update of every weight and bias: the Network is
// evaluated, error terms are computed from the output Layer backwards, and only then are the
// weights moved. There is no batching and no early stopping.
//
// Testing can be done both during training (see TrainArgs) and through a separate method, Test.
// Evaluating a Network never changes it, so Test runs across several goroutines.
//
// Saving and Loading
//
// The full state of a Network is captured by a Snapshot. Snapshots can be written to files with
// Save and Load, or kept in any SnapshotStore (see the subpackage "store"). Training can also
// record every sample it uses to a SampleLog. Restore rebuilds a Network from the latest Snapshot
// in a store, while Reload only reports on the contents of a SampleLog, skipping records that it
// can't decode.
package perceptron
