package main

import (
	"errors"
	"fmt"
	"os"
)

// exitErr passes the exit code together with the cause.
type exitErr struct {
	code  int
	cause error
}

func (x exitErr) Error() string { return x.cause.Error() }

func (x exitErr) Unwrap() error { return x.cause }

// exitOnErr writes error to os.Stderr and calls os.Exit with the code
// of exitErr or 1 by default. Does nothing if err is nil.
func exitOnErr(err error) {
	if err == nil {
		return
	}

	code := 1

	var e exitErr
	if errors.As(err, &e) {
		code = e.code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(code)
}

func main() {
	exitOnErr(newRootCmd().Execute())
}
