// requires resources/mnist_train.csv, resources/mnist_test.csv to be in local path with format:
// <class>, img[0], img[1], img[2], ... img[783],
// <class>, img[0], img[1], img[2], ... img[783],
// ...
// where <class> is 0 -> 9 and img[n] is an integer in the range [0, 255]
//
// the constants below should be changed accordingly if anything other than the usual MNIST files are used

package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	pc "github.com/sharnoff/perceptron"
	"github.com/sharnoff/perceptron/hyperparams"
	"github.com/sharnoff/perceptron/initializers"
	"github.com/sharnoff/perceptron/store"
)

const (
	imgSize    int     = 784 // 28x28
	numClasses int     = 10  // 0 -> 9
	maxInput   float64 = 255

	trainFile string = "resources/mnist_train.csv"
	testFile  string = "resources/mnist_test.csv"
	path      string = "resources/mnist_save.json"
)

func image(str string) (pc.Datum, error) {
	s := strings.Split(strings.TrimSuffix(str, ","), ",")

	if len(s) != (imgSize + 1) {
		return pc.Datum{}, errors.Errorf("Can't get image, wrong number of values in line (had %d, should be %d)", len(s), imgSize+1)
	}

	class, err := strconv.Atoi(strings.TrimSpace(s[0]))
	if err != nil {
		return pc.Datum{}, errors.Wrapf(err, "Couldn't parse value of classifier (given: %s)", s[0])
	} else if class < 0 || class >= numClasses {
		return pc.Datum{}, errors.Errorf("Classifier is out of bounds (%d not in [0, %d))", class, numClasses)
	}

	ins := make([]float64, imgSize)
	for i := range ins {
		v, err := strconv.ParseUint(strings.TrimSpace(s[i+1]), 10, 8)
		if err != nil {
			return pc.Datum{}, errors.Wrapf(err, "Couldn't parse value %d of line (given: %s)", i, s[i+1])
		}

		ins[i] = float64(v) / maxInput
	}

	return pc.Datum{Inputs: ins, Outputs: pc.OneHot(class, numClasses)}, nil
}

func data(fileName string) ([]pc.Datum, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't open file %s", fileName)
	}
	defer f.Close()

	var ds []pc.Datum

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; sc.Scan(); i++ {
		d, err := image(sc.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't get image on line %d for file %s", i, fileName)
		}

		ds = append(ds, d)
	}

	if err = sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "Scanning file %s encountered an error", fileName)
	}

	return ds, nil
}

const (
	epochs        int   = 10
	testFrequency int   = 2
	hiddenSize    int   = 100
	seed          int64 = 1
)

func train(net *pc.Network, trainData, testData []pc.Datum, logger *zap.Logger) {
	args := pc.TrainArgs{
		Data:          trainData,
		Epochs:        epochs,
		LearningRate:  hyperparams.Step(0.05).Add(5, 0.02).Add(8, 0.01),
		Snapshots:     store.NewFile(path),
		SnapshotEvery: 1,
		TestData:      testData,
		ShouldTest:    pc.Every(testFrequency),
		IsCorrect:     pc.CorrectHighest,
		Update: func(r pc.Result) {
			if r.IsTest {
				fmt.Printf("epoch %d: test cost %.5f, %.2f%% correct\n", r.Epoch, r.Cost, r.Correct*100)
			} else {
				fmt.Printf("epoch %d: training cost %.5f\n", r.Epoch, r.Cost)
			}
		},
		Logger: logger,
	}

	fmt.Println("Starting training...")
	startTime := time.Now()

	if err := net.Train(args); err != nil {
		panic(err.Error())
	}

	since := time.Since(startTime)
	fmt.Printf("Done training! It took %v seconds (%v minutes)\n", since.Seconds(), since.Minutes())
}

func test(net *pc.Network, data []pc.Datum) {
	fmt.Println("Testing...")
	startTime := time.Now()
	cost, correct, err := net.Test(data, pc.CorrectHighest)
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("cost %.5f, %.2f%% correct\n", cost, correct*100)
	fmt.Println("Done testing! It took", time.Since(startTime).Seconds(), "seconds")
}

func load() (net *pc.Network) {
	fmt.Println("Loading...")
	var err error
	if net, err = pc.Restore(store.NewFile(path)); err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")

	return
}

func initNet() *pc.Network {
	fmt.Println("Creating...")
	net, err := pc.Classifier([]int{imgSize, hiddenSize, numClasses},
		pc.WithInitializer(initializers.LeCun()),
		pc.WithRand(rand.New(rand.NewSource(seed))),
	)
	if err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")

	return net
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err.Error())
	}
	defer logger.Sync()

	trainData, err := data(trainFile)
	if err != nil {
		panic(err.Error())
	}

	testData, err := data(testFile)
	if err != nil {
		panic(err.Error())
	}

	net := initNet()
	// net := load()
	train(net, trainData, testData, logger)

	net = load()
	test(net, testData)
}
