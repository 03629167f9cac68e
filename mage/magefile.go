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

//go:build mage

// fatfs is the build script for FatFS.
package main

import (
	"fmt"
	"go/build"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	goFumptCmd  = "gofumpt"
	gitCmd      = "git"
	golangCiCmd = "golangci-lint"
	golangCiGit = "github.com/golangci/golangci-lint"
	golangCiBin = "https://raw.githubusercontent.com/golangci/golangci-lint/master/install.sh"
	goCmd       = "go"
	fatshPkg    = "./cmd/fatsh"
	coverDir    = "./coverage"
	coverFile   = "coverage.txt"
	raceCount   = 5
)

var coverPath = coverDir + "/" + coverFile

// Env returns the go environment variables.
func Env() {
	_ = sh.RunV(goCmd, "version")
	_ = sh.RunV(goCmd, "env")
}

// Build builds the project.
func Build() error {
	return sh.RunV(goCmd, "build", "-v", "./...")
}

// Install builds fatsh and saves it in $GOPATH/bin.
func Install() error {
	return sh.RunV(goCmd, "install", "-v", fatshPkg)
}

// Fmt runs gofumpt on the project.
func Fmt() error {
	if !isExecutable(goFumptCmd) {
		err := sh.RunV(goCmd, "install", "mvdan.cc/gofumpt@latest")
		if err != nil {
			return err
		}
	}

	return sh.RunV(goFumptCmd, "-l", "-w", "-extra", ".")
}

// Lint runs golangci-lint.
func Lint() error {
	if !isExecutable(golangCiCmd) {
		version, err := gitLastVersion(golangCiGit)
		if err != nil {
			return err
		}

		fmt.Printf("version = %s\n", version)

		script := filepath.Join(os.TempDir(), golangCiCmd+".sh")

		err = downloadFile(script, golangCiBin)
		if err != nil {
			return err
		}

		defer os.Remove(script)

		err = sh.RunV("sh", script, "-b", build.Default.GOPATH+"/bin", version)
		if err != nil {
			return err
		}
	}

	return sh.RunV(golangCiCmd, "run", "-v")
}

// CoverInit resets the coverage file.
func CoverInit() error {
	err := os.MkdirAll(coverDir, 0o777)
	if err != nil {
		return err
	}

	return os.WriteFile(coverPath, nil, 0o666)
}

// Cover opens a web browser with the latest coverage file.
func Cover() error {
	if isCI() {
		return nil
	}

	return sh.RunV(goCmd, "tool", "cover", "-html="+coverPath)
}

// Test runs tests with coverage.
func Test() error {
	mg.Deps(CoverInit)

	err := sh.RunV(goCmd, "test",
		"-race", "-v",
		"-covermode=atomic",
		"-coverprofile="+coverPath,
		"./...")
	if err != nil {
		return err
	}

	return Cover()
}

// Race runs the tests of the reentrant drive table with the data race detector.
func Race() error {
	return sh.RunV(goCmd, "test",
		"-run=TestReentrant",
		"-race", "-v",
		"-count="+strconv.Itoa(raceCount),
		".")
}

// isExecutable checks if name is an executable in the current path.
func isExecutable(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

// isCI tests if we run in a CI environment.
func isCI() bool {
	return os.Getenv("CI") != ""
}

// gitLastVersion return the latest tagged version of a remote git repository.
func gitLastVersion(repo string) (string, error) {
	const semverRegexp = `v\d+\.\d+\.\d+$`

	if !strings.HasPrefix(repo, "https://") {
		repo = "https://" + repo
	}

	out, err := sh.Output(gitCmd, "ls-remote", "--tags", "--refs", "--sort=v:refname", repo)
	if err != nil {
		return "", err
	}

	version := regexp.MustCompile(semverRegexp).FindString(out)
	if version == "" {
		return "", fmt.Errorf("version : incorrect format :\n%s", out)
	}

	return version, nil
}

// downloadFile downloads a url to a local file.
func downloadFile(path, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = io.Copy(f, resp.Body)

	return err
}
