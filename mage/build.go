//
//  Copyright 2024 The AVFS authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

//go:build ignore

// Download and install Mage in $GOPATH/bin, then install fatsh with it.
// Use "go run build.go" from the mage directory.
package main

import (
	"fmt"
	"os"
	"os/exec"
)

func main() {
	if err := installMage(); err != nil {
		fmt.Fprintf(os.Stderr, "InstallMage : %v\n", err)
		os.Exit(1)
	}

	if err := run("mage", "-d", ".", "-w", "..", "Install"); err != nil {
		fmt.Fprintf(os.Stderr, "Install : %v\n", err)
		os.Exit(2)
	}
}

// installMage builds the mage binary and saves it in $GOPATH/bin.
func installMage() error {
	const mageGitURL = "https://github.com/magefile/mage"

	if isExecutable("mage") {
		return nil
	}

	appDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("Getwd : want error to be nil, got %w", err)
	}

	rootDir, err := os.MkdirTemp("", "mage")
	if err != nil {
		return fmt.Errorf("MkdirTemp : want error to be nil, got %w", err)
	}

	defer os.RemoveAll(rootDir)

	if err = os.Chdir(rootDir); err != nil {
		return fmt.Errorf("Chdir : want error to be nil, got %w", err)
	}

	if err = run("git", "clone", mageGitURL); err != nil {
		return fmt.Errorf("Git : want error to be nil, got %w", err)
	}

	if err = os.Chdir("mage"); err != nil {
		return fmt.Errorf("Chdir : want error to be nil, got %w", err)
	}

	if err = run("go", "run", "bootstrap.go"); err != nil {
		return fmt.Errorf("Bootstrap : want error to be nil, got %w", err)
	}

	return os.Chdir(appDir)
}

// run runs a command cmd with arguments args.
func run(cmd string, args ...string) error {
	c := exec.Command(cmd, args...)
	c.Env = os.Environ()
	c.Stderr = os.Stderr
	c.Stdout = os.Stdout

	return c.Run()
}

// isExecutable checks if name is an executable in the current path.
func isExecutable(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
