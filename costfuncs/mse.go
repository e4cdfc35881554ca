// Package costfuncs provides the cost functions used to report the error of a perceptron.Network.
// Each type implements perceptron.CostFunction.
package costfuncs

type squaredError struct{}

// SquaredError returns the cost function that sums the squared difference between each target and
// output. It is the per-sample quantity accumulated over an epoch during training.
func SquaredError() squaredError {
	return squaredError{}
}

func (squaredError) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := targets[i] - outs[i]
		sum += d * d
	}

	return sum
}

type mse struct{}

// MSE returns the mean squared error cost function: SquaredError divided by the number of
// outputs.
func MSE() mse {
	return mse{}
}

// L2 is a proxy for MSE
func L2() mse {
	return MSE()
}

func (mse) Cost(outs, targets []float64) float64 {
	if len(outs) == 0 {
		return 0
	}

	return SquaredError().Cost(outs, targets) / float64(len(outs))
}
