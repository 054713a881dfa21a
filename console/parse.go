// Package console reads virtual page numbers from a user and prints the
// outcome of a simulation.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyInput is returned when a line holds nothing but whitespace.
var ErrEmptyInput = errors.New("input cannot be empty")

// ErrNoAddresses is returned when a line holds only delimiters.
var ErrNoAddresses = errors.New("no valid addresses found")

// MalformedTokenError reports a token that is not an integer.
type MalformedTokenError struct {
	Token string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("invalid input: '%s' is not a valid integer", e.Token)
}

// NegativeValueError reports an integer token below zero.
type NegativeValueError struct {
	Token string
	Value int64
}

func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("invalid input: '%s' must be a non-negative integer",
		e.Token)
}

func isDelimiter(r rune) bool {
	return r == ' ' || r == ',' || r == '\t'
}

// ParseAddresses splits a line on spaces, commas and tabs and parses each
// token as a virtual page number. The first invalid token stops the parsing.
func ParseAddresses(line string) ([]uint64, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrEmptyInput
	}

	tokens := strings.FieldsFunc(line, isDelimiter)
	if len(tokens) == 0 {
		return nil, ErrNoAddresses
	}

	vpns := make([]uint64, 0, len(tokens))
	for _, token := range tokens {
		vpn, err := parseToken(token)
		if err != nil {
			return nil, err
		}

		vpns = append(vpns, vpn)
	}

	return vpns, nil
}

func parseToken(token string) (uint64, error) {
	if strings.HasPrefix(token, "-") {
		value, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return 0, &MalformedTokenError{Token: token}
		}

		if value < 0 {
			return 0, &NegativeValueError{Token: token, Value: value}
		}

		return uint64(value), nil
	}

	vpn, err := strconv.ParseUint(strings.TrimPrefix(token, "+"), 10, 64)
	if err != nil {
		return 0, &MalformedTokenError{Token: token}
	}

	return vpn, nil
}
