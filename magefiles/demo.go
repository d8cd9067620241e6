//go:build mage

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Demo builds the binary and runs it against a scratch workspace: init,
// fields, seed, then list. The workspace is removed afterwards unless
// --keep is given.
// Usage: mage demo [--type User] [--count 5] [--seed 1] [--keep]
func Demo() error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	typeName := fs.String("type", "User", "registered entity type")
	count := fs.Int("count", 5, "entities to seed")
	seed := fs.Uint64("seed", 1, "generator seed")
	keep := fs.Bool("keep", false, "keep the scratch workspace")
	parseTargetFlags(fs)

	mg.Deps(Build)

	dir, err := os.MkdirTemp("", "reflected-demo-")
	if err != nil {
		return err
	}
	if *keep {
		defer fmt.Println("workspace kept at", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	bin := binaryPath()
	base := []string{"--config-dir", dir, "--data-dir", dir}
	steps := [][]string{
		{"init"},
		{"fields", *typeName},
		{"seed", *typeName, "--count", strconv.Itoa(*count), "--seed", strconv.FormatUint(*seed, 10)},
		{"list", *typeName},
	}
	for _, step := range steps {
		if err := sh.RunV(bin, append(base, step...)...); err != nil {
			return err
		}
	}
	return nil
}
