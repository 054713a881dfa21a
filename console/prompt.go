package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// A Prompter asks for virtual page numbers until it reads a valid line.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter that reads lines from in and writes the
// banner and error messages to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// PrintBanner introduces the program and shows an example input.
func (p *Prompter) PrintBanner() {
	fmt.Fprintln(p.out, "TLB Simulation Program")
	fmt.Fprintln(p.out, "Enter Virtual Page Numbers (space-separated):")
	fmt.Fprintln(p.out, "Example: 10 20 30 40 10 20 50 60 70 10")
}

// ReadAddresses reads lines until one parses into at least one virtual page
// number. Each rejected line is explained to the user. It returns io.EOF if
// the input ends first.
func (p *Prompter) ReadAddresses() ([]uint64, error) {
	for p.scanner.Scan() {
		vpns, err := ParseAddresses(p.scanner.Text())
		if err == nil {
			return vpns, nil
		}

		p.explain(err)
	}

	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading addresses: %w", err)
	}

	return nil, io.EOF
}

func (p *Prompter) explain(err error) {
	var malformed *MalformedTokenError
	var negative *NegativeValueError

	switch {
	case errors.Is(err, ErrEmptyInput):
		fmt.Fprintln(p.out, "Input cannot be empty. Please try again.")
	case errors.Is(err, ErrNoAddresses):
		fmt.Fprintln(p.out, "No valid addresses found. Please try again.")
	case errors.As(err, &malformed):
		fmt.Fprintf(p.out,
			"Error parsing input: Invalid input: '%s' is not a valid integer.\n",
			malformed.Token)
		fmt.Fprintln(p.out, "Please enter valid space-separated integers.")
	case errors.As(err, &negative):
		fmt.Fprintf(p.out,
			"Input validation error: Invalid input: '%s' must be a "+
				"non-negative integer.\n",
			negative.Token)
		fmt.Fprintln(p.out, "Please enter non-negative integers.")
	default:
		fmt.Fprintf(p.out, "Unexpected error: %v\n", err)
		fmt.Fprintln(p.out, "Please try again.")
	}
}
