// Command fireaudit scores inspection findings and answers scheduling
// questions offline, without a database.
package main

import (
	"errors"
	"fmt"
	"os"
)

// exitError carries a non-default process exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
