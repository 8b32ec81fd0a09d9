// Command hashpass prints bcrypt hashes for use in the accounts file.
package main

import (
	"flag"
	"fmt"
	"os"

	"jangja-school/internal/pkg/password"
)

func main() {
	cost := flag.Int("cost", password.DefaultCost, "bcrypt cost")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "USAGE: hashpass [-cost N] PASS [PASS ...]\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	failed := false
	for _, pass := range flag.Args() {
		h, err := password.HashWithCost(pass, *cost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s\n", h)
	}

	if failed {
		os.Exit(1)
	}
}
