package cmds

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

const rawKeyLength = 32

var ErrInvalid = errors.New("invalid command, check arguments")

type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// ValidateKey checks that k is a RAW wallet key: base58 of 32 bytes. Empty is
// OK, then a random key is used.
func ValidateKey(k string) error {
	if k == "" {
		return nil
	}
	b, err := base58.Decode(k)
	if err != nil || len(b) != rawKeyLength {
		return fmt.Errorf("%w: wallet key is not valid RAW key", ErrInvalid)
	}
	return nil
}

func ValidateSeed(seed string) error {
	if seed != "" && len(seed) != 32 {
		return fmt.Errorf("%w: seed must be empty or length of 32", ErrInvalid)
	}
	return nil
}

// ValidateDir checks that dir is set and isn't a file. A missing directory
// is OK, it's created when needed.
func ValidateDir(name, dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalid, name)
	}
	fi, err := os.Stat(dir)
	if err == nil && !fi.IsDir() {
		return fmt.Errorf("%w: %s (%s) is not a directory", ErrInvalid, name, dir)
	}
	return nil
}

// Fprintln is fmt.Fprintln but it allows writer to be nil. Note! it throws an
// error.
func Fprintln(w io.Writer, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but it allows writer to be nil. Note! it throws an
// error.
func Fprintf(w io.Writer, format string, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}

// Fprint is fmt.Fprint but it allows writer to be nil. Note! it throws an
// error.
func Fprint(w io.Writer, a ...any) {
	if w != nil {
		try.To1(fmt.Fprint(w, a...))
	}
}
