package perceptron

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sharnoff/perceptron/initializers"
)

// Network is a fully connected feedforward network: an ordered list of Layers, where each Layer
// takes the outputs of the one before it as input. The first Layer takes the external input.
//
// A Network is mutated only by training. Forward and Predict do not modify it, so a Network that
// is no longer being trained can be shared between goroutines.
type Network struct {
	inputSize int
	layers    []*Layer
}

// Option configures the construction of a Network by New.
type Option func(*options)

type options struct {
	acts []Activation
	init Initializer
	rng  *rand.Rand
}

// WithActivations sets the Activation of each Layer. Either a single Activation can be given, to
// be used by every Layer, or exactly one for each Layer. The default is Sigmoid everywhere.
func WithActivations(acts ...Activation) Option {
	return func(o *options) {
		o.acts = acts
	}
}

// WithInitializer sets the Initializer used for every weight and bias. The default is
// initializers.FanIn().
func WithInitializer(init Initializer) Option {
	return func(o *options) {
		o.init = init
	}
}

// WithRand sets the source of randomness used for initialization. Passing a seeded source makes
// construction reproducible. The default is seeded by the current time.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// New constructs a Network from the given widths: sizes[0] is the width of the input, and each
// following value is the number of Units in the next Layer. For sizes [n0, n1, ..., nL], there
// are L Layers, where Layer i has n(i+1) Units, each with n(i) weights.
//
// New returns ErrInvalidArchitecture if fewer than two sizes are given or any size is not
// positive, and UnsupportedActivationError if any of the given Activations are not supported.
func New(sizes []int, opts ...Option) (*Network, error) {
	if len(sizes) < 2 {
		return nil, ErrInvalidArchitecture
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil, ErrInvalidArchitecture
		}
	}

	o := options{init: initializers.FanIn()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.init == nil {
		return nil, errors.Errorf("Can't construct network, Initializer is nil")
	}

	numLayers := len(sizes) - 1
	acts, err := expandActivations(o.acts, numLayers)
	if err != nil {
		return nil, err
	}

	net := &Network{
		inputSize: sizes[0],
		layers:    make([]*Layer, numLayers),
	}

	for i := range net.layers {
		l := &Layer{Units: make([]*Unit, sizes[i+1]), Activation: acts[i]}
		for u := range l.Units {
			l.Units[u] = newUnit(sizes[i], o.init, o.rng)
		}

		net.layers[i] = l
	}

	return net, nil
}

// Classifier constructs a Network in which every hidden Layer uses Tanh and the output Layer uses
// Sigmoid. Any WithActivations option given is overridden.
func Classifier(sizes []int, opts ...Option) (*Network, error) {
	if len(sizes) < 2 {
		return nil, ErrInvalidArchitecture
	}

	acts := make([]Activation, len(sizes)-1)
	for i := range acts {
		acts[i] = Tanh
	}
	acts[len(acts)-1] = Sigmoid

	return New(sizes, append(opts, WithActivations(acts...))...)
}

func expandActivations(acts []Activation, numLayers int) ([]Activation, error) {
	out := make([]Activation, numLayers)
	switch len(acts) {
	case 0:
		// all default to Sigmoid, which is the zero value
	case 1:
		for i := range out {
			out[i] = acts[0]
		}
	case numLayers:
		copy(out, acts)
	default:
		return nil, DimensionMismatchError{numLayers, len(acts), "activations"}
	}

	for i, a := range out {
		if !a.Valid() {
			return nil, errors.Wrapf(UnsupportedActivationError{Activation: a}, "Can't construct layer %d", i)
		}
	}

	return out, nil
}

// Trace is the list of activation vectors from a single forward pass. Trace[0] is the input, and
// Trace[i+1] is the output of Layer i.
type Trace [][]float64

// Output returns the last vector of the Trace: the output of the Network.
func (t Trace) Output() []float64 {
	if len(t) == 0 {
		return nil
	}

	return t[len(t)-1]
}

// Forward propagates the input through every Layer in order, returning all of the intermediate
// values. The input is copied, so it may be modified afterwards.
//
// If the length of the input does not equal InputSize(), Forward returns DimensionMismatchError.
func (net *Network) Forward(input []float64) (Trace, error) {
	if len(input) != net.inputSize {
		return nil, DimensionMismatchError{net.inputSize, len(input), "network input"}
	}

	trace := make(Trace, len(net.layers)+1)
	trace[0] = append([]float64(nil), input...)

	for i, l := range net.layers {
		values, err := l.Evaluate(trace[i])
		if err != nil {
			return nil, errors.Wrapf(err, "Forward pass failed at layer %d", i)
		}

		trace[i+1] = values
	}

	return trace, nil
}

// Predict returns the output of the Network for the given input. It is equivalent to calling
// Forward and taking the last vector of the Trace.
func (net *Network) Predict(input []float64) ([]float64, error) {
	trace, err := net.Forward(input)
	if err != nil {
		return nil, err
	}

	return trace.Output(), nil
}

// InputSize returns the number of values expected as input to the Network.
func (net *Network) InputSize() int {
	return net.inputSize
}

// OutputSize returns the number of values output by the Network.
func (net *Network) OutputSize() int {
	return net.layers[len(net.layers)-1].Size()
}

// Sizes returns the widths that would be given to New to construct a Network of the same shape.
func (net *Network) Sizes() []int {
	sizes := make([]int, len(net.layers)+1)
	sizes[0] = net.inputSize
	for i, l := range net.layers {
		sizes[i+1] = l.Size()
	}

	return sizes
}

// Activations returns the Activation of each Layer, in order.
func (net *Network) Activations() []Activation {
	acts := make([]Activation, len(net.layers))
	for i, l := range net.layers {
		acts[i] = l.Activation
	}

	return acts
}

// Layers returns the Layers of the Network. The slice is a copy, but the Layers are not; changes
// to them will affect the Network.
func (net *Network) Layers() []*Layer {
	ls := make([]*Layer, len(net.layers))
	copy(ls, net.layers)
	return ls
}

// Clone returns a deep copy of the Network.
func (net *Network) Clone() *Network {
	c := &Network{inputSize: net.inputSize, layers: make([]*Layer, len(net.layers))}
	for i, l := range net.layers {
		c.layers[i] = l.clone()
	}

	return c
}

// Validate checks that every Unit has as many weights as there are values coming into its Layer,
// and that every Layer has a supported Activation.
func (net *Network) Validate() error {
	if net.inputSize <= 0 || len(net.layers) == 0 {
		return ErrInvalidArchitecture
	}

	width := net.inputSize
	for i, l := range net.layers {
		if l.Size() == 0 {
			return errors.Wrapf(ErrInvalidArchitecture, "Layer %d has no units", i)
		}
		if !l.Activation.Valid() {
			return errors.Wrapf(UnsupportedActivationError{Activation: l.Activation}, "Layer %d", i)
		}

		for j, u := range l.Units {
			if len(u.Weights) != width {
				return errors.Wrapf(DimensionMismatchError{width, len(u.Weights), "unit weights"}, "Layer %d, unit %d", i, j)
			}
		}

		width = l.Size()
	}

	return nil
}
