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

// fatsh runs a single FAT file system command against configured volumes.
//
// Usage:
//
//	fatsh [--config FILE] [--debug] <command> [args]
//
// The configuration file is given by --config or the FATSH_CONFIG environment
// variable. Without configuration, drive 0 is mounted on the current directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/avfs/fatfs"
	"github.com/avfs/fatfs/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "fatsh: %v (FR %d)\n", err, fatfs.ResultOf(err))
		os.Exit(1)
	}
}

// command is a fatsh command.
type command struct {
	usage string
	nargs int // nargs is the number of required arguments.
	opt   int // opt is the number of optional arguments.
	run   func(sh *shell, args []string) error
}

var commands = map[string]command{
	"ls":       {usage: "ls PATH", nargs: 1, run: (*shell).ls},
	"stat":     {usage: "stat PATH", nargs: 1, run: (*shell).stat},
	"cat":      {usage: "cat PATH", nargs: 1, run: (*shell).cat},
	"put":      {usage: "put PATH", nargs: 1, run: (*shell).put},
	"mkdir":    {usage: "mkdir PATH", nargs: 1, run: (*shell).mkdir},
	"rm":       {usage: "rm PATH", nargs: 1, run: (*shell).rm},
	"mv":       {usage: "mv OLD NEW", nargs: 2, run: (*shell).mv},
	"label":    {usage: "label [PATH]", opt: 1, run: (*shell).label},
	"setlabel": {usage: "setlabel LABEL", nargs: 1, run: (*shell).setLabel},
	"free":     {usage: "free [PATH]", opt: 1, run: (*shell).free},
	"mkfs":     {usage: "mkfs PATH", nargs: 1, run: (*shell).mkfs},
	"cwd":      {usage: "cwd", run: (*shell).cwd},
	"time":     {usage: "time", run: (*shell).time},
}

// shell holds the state of a fatsh command.
type shell struct {
	vfs    *fatfs.FS
	stdin  io.Reader
	stdout io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		configPath string
		debug      bool
	)

	flagSet := pflag.NewFlagSet("fatsh", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", os.Getenv("FATSH_CONFIG"), "configuration file (.yaml or .jsonc)")
	flagSet.BoolVar(&debug, "debug", os.Getenv("FATSH_DEBUG") != "", "log debug records")

	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  fatsh [flags] <command> [args]\n\nCommands:\n")

		for _, name := range []string{
			"ls", "stat", "cat", "put", "mkdir", "rm", "mv",
			"label", "setlabel", "free", "mkfs", "cwd", "time",
		} {
			fmt.Fprintf(stderr, "  %s\n", commands[name].usage)
		}

		fmt.Fprintf(stderr, "\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return err
	}

	args = flagSet.Args()
	if len(args) == 0 {
		flagSet.Usage()

		return errors.New("missing command")
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}

	args = args[1:]
	if len(args) < cmd.nargs || len(args) > cmd.nargs+cmd.opt {
		return fmt.Errorf("usage: fatsh %s", cmd.usage)
	}

	cfg := config.Default()

	if configPath != "" {
		var err error

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	vfs, err := cfg.Open(logger)
	if err != nil {
		return err
	}

	sh := &shell{vfs: vfs, stdin: stdin, stdout: stdout}

	return cmd.run(sh, args)
}

// optArg returns the first argument or an empty string.
func optArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}

func (sh *shell) ls(args []string) error {
	dir, err := sh.vfs.Opendir(args[0])
	if err != nil {
		return err
	}

	defer dir.Close()

	for {
		var fno fatfs.FileInfo

		err = dir.Read(&fno)
		if err != nil {
			return err
		}

		if fno.Name == "" {
			return nil
		}

		sh.printInfo(&fno)
	}
}

func (sh *shell) stat(args []string) error {
	fno, err := sh.vfs.Stat(args[0])
	if err != nil {
		return err
	}

	sh.printInfo(&fno)

	return nil
}

// printInfo prints the attributes, size, modification time and name of a file.
func (sh *shell) printInfo(fno *fatfs.FileInfo) {
	attrs := []byte("-----")

	for i, a := range []struct {
		attr fatfs.Attr
		c    byte
	}{
		{fatfs.AttrDirectory, 'D'},
		{fatfs.AttrReadOnly, 'R'},
		{fatfs.AttrHidden, 'H'},
		{fatfs.AttrSystem, 'S'},
		{fatfs.AttrArchive, 'A'},
	} {
		if fno.Attrib&a.attr != 0 {
			attrs[i] = a.c
		}
	}

	fmt.Fprintf(sh.stdout, "%s %10d %s %s\n",
		attrs, fno.Size, fno.ModTime().Format("2006-01-02 15:04:05"), fno.Name)
}

func (sh *shell) cat(args []string) error {
	f, err := sh.vfs.Open(args[0], fatfs.ModeRead)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = io.Copy(sh.stdout, f)

	return err
}

func (sh *shell) put(args []string) error {
	f, err := sh.vfs.Open(args[0], fatfs.ModeCreateAlways|fatfs.ModeWrite)
	if err != nil {
		return err
	}

	_, err = io.Copy(f, sh.stdin)
	if err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

func (sh *shell) mkdir(args []string) error {
	return sh.vfs.Mkdir(args[0])
}

func (sh *shell) rm(args []string) error {
	return sh.vfs.Unlink(args[0])
}

func (sh *shell) mv(args []string) error {
	return sh.vfs.Rename(args[0], args[1])
}

func (sh *shell) label(args []string) error {
	label, serial, err := sh.vfs.GetLabel(optArg(args))
	if err != nil {
		return err
	}

	fmt.Fprintf(sh.stdout, "%s %04X-%04X\n", label, serial>>16, serial&0xFFFF)

	return nil
}

func (sh *shell) setLabel(args []string) error {
	return sh.vfs.SetLabel(args[0])
}

func (sh *shell) free(args []string) error {
	sectors, v, err := sh.vfs.GetFree(optArg(args))
	if err != nil {
		return err
	}

	fmt.Fprintf(sh.stdout, "%d:%s %d sectors free\n", v.Number(), v.MountPoint(), sectors)

	return nil
}

func (sh *shell) mkfs(args []string) error {
	return sh.vfs.Mkfs(args[0])
}

func (sh *shell) cwd(_ []string) error {
	wd, err := sh.vfs.Getcwd()
	if err != nil {
		return err
	}

	fmt.Fprintln(sh.stdout, wd)

	return nil
}

func (sh *shell) time(_ []string) error {
	t := sh.vfs.FatTime()
	tm := fatfs.UnpackDateTime(uint16(t>>16), uint16(t))

	fmt.Fprintf(sh.stdout, "0x%08X %s\n", t, tm.Format("2006-01-02 15:04:05"))

	return nil
}

