package main

import (
	"errors"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	cmd := rootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			log.Println(err)
		}
		os.Exit(1)
	}
}
