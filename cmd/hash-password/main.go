// Command hash-password prints bcrypt hashes suitable for seeding accounts
// directly in the database, for example the first admin.
//
//	hash-password [-cost 10] password...
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-password [-cost n] password...")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher(*cost)
	verifier := auth.NewBcryptVerifier()

	failed := false
	for _, password := range flag.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing password of %d bytes: %v\n", len(password), err)
			failed = true
			continue
		}
		if err := verifier.Compare(hash, password); err != nil {
			fmt.Fprintf(os.Stderr, "hash did not verify: %v\n", err)
			failed = true
			continue
		}
		fmt.Println(hash)
	}
	if failed {
		os.Exit(1)
	}
}
