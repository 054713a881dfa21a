package console

import (
	"bytes"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2/dsl/core"
	. "github.com/onsi/gomega"
)

var _ = Describe("Prompter", func() {
	var (
		out *bytes.Buffer
	)

	BeforeEach(func() {
		out = new(bytes.Buffer)
	})

	It("should print the banner", func() {
		p := NewPrompter(strings.NewReader(""), out)

		p.PrintBanner()

		Expect(out.String()).To(Equal(
			"TLB Simulation Program\n" +
				"Enter Virtual Page Numbers (space-separated):\n" +
				"Example: 10 20 30 40 10 20 50 60 70 10\n"))
	})

	It("should return the first valid line", func() {
		p := NewPrompter(strings.NewReader("10 20\n30\n"), out)

		vpns, err := p.ReadAddresses()

		Expect(err).NotTo(HaveOccurred())
		Expect(vpns).To(Equal([]uint64{10, 20}))
		Expect(out.String()).To(BeEmpty())
	})

	It("should retry until the input is valid", func() {
		input := "\n" +
			"1 two\n" +
			"3 -4\n" +
			",,\n" +
			"5 6\n"
		p := NewPrompter(strings.NewReader(input), out)

		vpns, err := p.ReadAddresses()

		Expect(err).NotTo(HaveOccurred())
		Expect(vpns).To(Equal([]uint64{5, 6}))
		Expect(out.String()).To(Equal(
			"Input cannot be empty. Please try again.\n" +
				"Error parsing input: Invalid input: 'two' is not a valid integer.\n" +
				"Please enter valid space-separated integers.\n" +
				"Input validation error: Invalid input: '-4' must be a " +
				"non-negative integer.\n" +
				"Please enter non-negative integers.\n" +
				"No valid addresses found. Please try again.\n"))
	})

	It("should report the end of the input", func() {
		p := NewPrompter(strings.NewReader("bad\n"), out)

		_, err := p.ReadAddresses()

		Expect(err).To(MatchError(io.EOF))
	})
})
