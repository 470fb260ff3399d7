//go:build ignore

// genhash prints bcrypt hashes for seeding users by hand:
//
//	go run scripts/genhash.go [-cost 10] password...
package main

import (
	"flag"
	"fmt"
	"go-devnet-backend/pkg/auth"
	"os"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost n] password...")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher(*cost)
	for _, pass := range flag.Args() {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, hash)
	}
}
