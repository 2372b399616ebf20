package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HicaroD/kaleido/internal/config"
	"github.com/HicaroD/kaleido/internal/driver"
)

func TestCli(t *testing.T) {
	src := filepath.Join(t.TempDir(), "main.k")
	if err := os.WriteFile(src, []byte("1 + 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		args         []string
		command      Command
		buildType    config.BuildType
		buildTypeSet bool
	}{
		{nil, COMMAND_REPL, config.DEBUG, false},
		{[]string{"repl", "-release"}, COMMAND_REPL, config.RELEASE, true},
		{[]string{"help"}, COMMAND_HELP, config.DEBUG, false},
		{[]string{"env"}, COMMAND_ENV, config.DEBUG, false},
		{[]string{"run", src}, COMMAND_RUN, config.DEBUG, false},
		{[]string{"run", src, "-release"}, COMMAND_RUN, config.RELEASE, true},
		{[]string{"run", src, "-debug"}, COMMAND_RUN, config.DEBUG, true},
		{[]string{"emit", src}, COMMAND_EMIT, config.DEBUG, false},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestCli(%v)", test.args), func(t *testing.T) {
			result, err := cli(test.args)
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if result.Command != test.command {
				t.Errorf("expected command %d, got %d", test.command, result.Command)
			}
			if result.BuildType != test.buildType || result.BuildTypeSet != test.buildTypeSet {
				t.Errorf("expected %s (set=%v), got %s (set=%v)", test.buildType, test.buildTypeSet, result.BuildType, result.BuildTypeSet)
			}
		})
	}
}

func TestCliErrors(t *testing.T) {
	src := filepath.Join(t.TempDir(), "main.k")
	if err := os.WriteFile(src, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := [][]string{
		{"build"},
		{"run"},
		{"run", filepath.Join(t.TempDir(), "missing.k")},
		{"run", src, "-release", "-debug"},
		{"emit", src, "-fast"},
	}

	for _, args := range tests {
		t.Run(fmt.Sprintf("TestCliErrors(%v)", args), func(t *testing.T) {
			if _, err := cli(args); err == nil {
				t.Errorf("expected an error for %v", args)
			}
		})
	}
}

func TestPrintResult(t *testing.T) {
	tests := []struct {
		result   driver.Result
		expected string
	}{
		{driver.Result{Kind: driver.RESULT_EXPR, Value: 2, HasValue: true}, "Evaluated to 2\n"},
		{driver.Result{Kind: driver.RESULT_EXPR, IR: "define double @0()\n"}, "Read top-level expression:\ndefine double @0()\n"},
		{driver.Result{Kind: driver.RESULT_DEFINITION, IR: "define double @f()\n"}, "Read function definition:\n"},
		{driver.Result{Kind: driver.RESULT_EXTERN, IR: "declare double @sin(double)\n"}, "Read extern:\n"},
		{driver.Result{Kind: driver.RESULT_MODULE, IR: "; ModuleID = 'repl'\n"}, "; ModuleID"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestPrintResult(%s)", test.result.Kind), func(t *testing.T) {
			var out bytes.Buffer
			printResult(&out, test.result)
			if !strings.HasPrefix(out.String(), test.expected) {
				t.Errorf("expected output starting with %q, got %q", test.expected, out.String())
			}
		})
	}
}
