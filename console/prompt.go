package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when an entry cannot be parsed.
var ErrInvalidInput = errors.New("invalid input")

// maxLineLength bounds a single entry. Longer lines are consumed whole and
// rejected.
const maxLineLength = 4096

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// text prints label and reads one trimmed line. io.EOF means the input is
// exhausted.
func (p *prompter) text(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	if len(line) > maxLineLength {
		return "", fmt.Errorf("%w: entry longer than %d characters", ErrInvalidInput, maxLineLength)
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) number(label string) (int, error) {
	s, err := p.text(label)
	if err != nil {
		return 0, err
	}
	return parseInt(s)
}

func (p *prompter) amount(label string) (decimal.Decimal, error) {
	s, err := p.text(label)
	if err != nil {
		return decimal.Zero, err
	}
	return parseDecimal(s)
}

// confirm accepts y or Y; anything else declines.
func (p *prompter) confirm(label string) (bool, error) {
	s, err := p.text(label + " (y/n): ")
	if err != nil {
		return false, err
	}
	return s == "y" || s == "Y", nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' is not a whole number", ErrInvalidInput, s)
	}
	return n, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: '%s' is not an amount", ErrInvalidInput, s)
	}
	return d, nil
}
