// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
)

const (
	pkg          = "github.com/aibor/vfstree/cmd/vfstree"
	toolsModfile = ".github/workflows/go.mod"
	coverProfile = "cover.out"
)

var env = map[string]string{}

func init() {
	gobin, exists := os.LookupEnv("GOBIN")
	if !exists {
		gobin = "./gobin"
	}

	if abs, err := filepath.Abs(gobin); err == nil {
		gobin = abs
	}

	env["GOBIN"] = gobin
}

func binary() string {
	return filepath.Join(env["GOBIN"], "vfstree")
}

// Install vfstree to the gobin directory.
func Install() error {
	modified, err := target.Dir(binary(), "cmd", "internal", "go.mod")
	if err != nil {
		return err
	}

	if !modified {
		return nil
	}

	return sh.RunWithV(env, "go", "install", pkg)
}

// Test runs all unit tests with race detector and coverage.
func Test() error {
	return sh.RunV("go", "test",
		"-race",
		"-timeout", "2m",
		"-coverprofile", coverProfile,
		"./...",
	)
}

// Coverage converts the coverage profile into cobertura XML.
func Coverage() error {
	mg.Deps(Test)

	out, err := os.Create("coverage.xml")
	if err != nil {
		return err
	}
	defer out.Close()

	in, err := os.Open(coverProfile)
	if err != nil {
		return err
	}
	defer in.Close()

	cmd := exec.Command("go", "tool", "-modfile", toolsModfile, "gocover-cobertura")
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// Vulncheck scans the module for known vulnerabilities.
func Vulncheck() error {
	return sh.RunV("go", "tool", "-modfile", toolsModfile, "govulncheck", "./...")
}

// Smoke resolves a few host paths with the installed binary.
func Smoke() error {
	mg.Deps(Install)

	out, err := sh.Output(binary(), "resolve", "--nofollow", "/", "/proc/self")
	if err != nil {
		return err
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "/proc/self\t/proc/self\tsymlink") {
		return fmt.Errorf("unexpected output:\n%s", out)
	}

	return nil
}

// Clean removes volatile files.
func Clean() error {
	for _, path := range []string{env["GOBIN"], coverProfile, "coverage.xml"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}

	return nil
}
