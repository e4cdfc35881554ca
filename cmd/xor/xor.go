package main

import (
	"fmt"
	"math/rand"

	pc "github.com/sharnoff/perceptron"
	"github.com/sharnoff/perceptron/hyperparams"
)

func format(fs ...float64) (str string) {
	for i := range fs {
		if fs[i] != 0 {
			str += fmt.Sprintf("%v", fs[i])
		}
		str += ", "
	}

	return
}

const (
	statusFrequency int = 1000
	testFrequency   int = 2000

	// main hyperparameters
	learningRate float64 = 0.5
	epochs       int     = 10000
	seed         int64   = 1

	// where to save/load the network
	path string = "xor save"
)

func train(net *pc.Network, dataset []pc.Datum) {
	fmt.Println("Starting training...")
	fmt.Println("Epoch, Status Cost, Test Cost, Test Percent")

	args := pc.TrainArgs{
		Data:         dataset,
		Epochs:       epochs,
		LearningRate: hyperparams.Constant(learningRate),
		TestData:     dataset,
		ShouldTest:   pc.Every(testFrequency),
		Update: func(r pc.Result) {
			if r.IsTest {
				fmt.Printf("%d, %s\n", r.Epoch, format(0, r.Cost, r.Correct))
			} else if r.Epoch%statusFrequency == 0 {
				fmt.Printf("%d, %s\n", r.Epoch, format(r.Cost))
			}
		},
	}

	if err := net.Train(args); err != nil {
		panic(err.Error())
	}

	fmt.Println("Done training!")
}

func test(net *pc.Network, dataset []pc.Datum) {
	fmt.Println("Testing...")
	for _, d := range dataset {
		outs, err := net.Predict(d.Inputs)
		if err != nil {
			panic(err.Error())
		}

		fmt.Printf("%v -> %.4f (want %v)\n", d.Inputs, outs[0], d.Outputs[0])
	}
}

func save(net *pc.Network) {
	fmt.Println("Saving...")
	if err := net.Save(path, true); err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")
}

func load() (net *pc.Network) {
	fmt.Println("Loading...")

	var err error
	if net, err = pc.Load(path); err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")

	return
}

func main() {
	dataset := []pc.Datum{
		{Inputs: []float64{0, 0}, Outputs: []float64{0}},
		{Inputs: []float64{0, 1}, Outputs: []float64{1}},
		{Inputs: []float64{1, 0}, Outputs: []float64{1}},
		{Inputs: []float64{1, 1}, Outputs: []float64{0}},
	}

	fmt.Println("Setting up network...")
	net, err := pc.New([]int{2, 3, 1}, pc.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")

	train(net, dataset)
	test(net, dataset)
	save(net)
	net = load()
	test(net, dataset)
}
