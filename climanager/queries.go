// Package climanager handles the interactive prompts of the command-line programs
package climanager

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Prompter reads answers line by line from an input, writing prompts and complaints about invalid
// answers to an output. Entering "quit" or "q" at any prompt quits.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter reading from r and writing to w
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(r), out: w}
}

func isQuit(s string) bool {
	return s == "quit" || s == "q"
}

// next returns the next trimmed line of input, and whether or not the user quit.
// returns an error if the input runs out
func (p *Prompter) next() (string, bool, error) {
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", false, errors.Wrapf(err, "Couldn't read input")
		}
		return "", false, errors.Errorf("Input ended")
	}

	text := strings.TrimSpace(p.sc.Text())
	return text, isQuit(text), nil
}

// QueryTF returns user input of true/false, and whether or not the user quit.
//
// in case of other return states (error or quit), the boolean defaults to 'false'
func (p *Prompter) QueryTF(prompt string) (bool, bool, error) {
	fmt.Fprint(p.out, prompt)
	for {
		text, quit, err := p.next()
		if err != nil || quit {
			return false, quit, err
		}

		switch text {
		case "y", "yes":
			return true, false, nil
		case "n", "no":
			return false, false, nil
		default:
			fmt.Fprint(p.out, "Please enter 'y' or 'n': ")
		}
	}
}

// QueryFloat gets a float from user input
//
// 'isValid' returns an error string if the given value is out of bounds
// if 'isValid' returns an empty string, that value will be returned by QueryFloat
// the error message from 'isValid' will be printed as-is. 'isValid' may be nil
//
// returns 'true' only if the user quits
func (p *Prompter) QueryFloat(prompt string, isValid func(float64) string) (float64, bool, error) {
	fmt.Fprint(p.out, prompt)
	for {
		text, quit, err := p.next()
		if err != nil || quit {
			return 0, quit, err
		}

		if v, err := strconv.ParseFloat(text, 64); err != nil {
			fmt.Fprint(p.out, "Please enter a floating point number: ")
		} else if isValid == nil {
			return v, false, nil
		} else if errMsg := isValid(v); errMsg != "" {
			fmt.Fprint(p.out, errMsg)
		} else {
			return v, false, nil
		}
	}
}

// QueryVector asks for each of the named values in turn with QueryFloat, stopping early if the user
// quits.
func (p *Prompter) QueryVector(names []string, isValid func(float64) string) ([]float64, bool, error) {
	vs := make([]float64, len(names))
	for i, name := range names {
		v, quit, err := p.QueryFloat(fmt.Sprintf("%s: ", name), isValid)
		if err != nil || quit {
			return nil, quit, err
		}
		vs[i] = v
	}

	return vs, false, nil
}
