package main

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	pc "github.com/sharnoff/perceptron"
	"github.com/sharnoff/perceptron/hyperparams"
)

func data() []pc.Datum {
	return []pc.Datum{
		{Inputs: []float64{0, 0}, Outputs: []float64{0}},
		{Inputs: []float64{0, 1}, Outputs: []float64{0}},
		{Inputs: []float64{1, 0}, Outputs: []float64{0}},
		{Inputs: []float64{1, 1}, Outputs: []float64{1}},
	}
}

func main() {
	// AND is linearly separable, so a single unit is enough
	fmt.Print("Setting up network...")
	net, err := pc.New([]int{2, 1}, pc.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		fmt.Printf("%s\n", errors.Wrap(err, "couldn't create new network"))
		return
	}
	fmt.Println("Done!")

	trainData := data()

	learningRate, maxEons := 0.5, 3000

	fmt.Printf("starting training for %d eons\n", maxEons)
	err = net.Train(pc.TrainArgs{
		Data:         trainData,
		Epochs:       maxEons,
		LearningRate: hyperparams.Constant(learningRate),
		TestData:     trainData,
		ShouldTest:   pc.Every(300),
		Update: func(r pc.Result) {
			if r.IsTest {
				fmt.Printf("%d: %v, %v\n", r.Epoch, r.Cost, r.Correct)
			}
		},
	})
	if err != nil {
		fmt.Printf("%s\n", errors.Wrapf(err, "error in training"))
		return
	}
	fmt.Println("Done training... performing final tests")

	for i, d := range trainData {
		outs, err := net.Predict(d.Inputs)
		if err != nil {
			fmt.Printf("%s\n\t- at test %d", err.Error(), i)
		}
		fmt.Printf("%v → %v\n", d.Outputs, outs)
	}
}
