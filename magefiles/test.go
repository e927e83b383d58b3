//go:build mage

package main

import (
	"github.com/magefile/mage/sh"
)

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Cover runs all tests with coverage reporting.
func Cover() error {
	return sh.RunV(binGo, "test", "-cover", "./...")
}
