package testutil

import (
	"bytes"
	"fmt"
	"os"

	llvmbackend "github.com/HicaroD/kaleido/internal/backend/llvm"
	"github.com/HicaroD/kaleido/internal/config"
	"github.com/HicaroD/kaleido/internal/diagnostics"
	"github.com/HicaroD/kaleido/internal/driver"
	"github.com/HicaroD/kaleido/internal/jit"
)

// RunFile evaluates a Kaleidoscope source file the way `kaleido run` does
// and returns what it printed. Diagnostics are collected silently.
func RunFile(path string) (string, *diagnostics.Collector) {
	return RunFileWithBuildType(path, config.DEBUG)
}

func RunFileWithBuildType(path string, buildType config.BuildType) (string, *diagnostics.Collector) {
	collector := diagnostics.NewWithWriter(nil)

	engine, err := jit.New(buildType, config.DefaultPasses(buildType), nil)
	if err != nil {
		collector.ReportAndSave(diagnostics.Diag{Message: fmt.Sprintf("failed to create engine: %v", err)})
		return "", collector
	}
	defer engine.Dispose()

	output, _ := runPipeline(path, engine, collector)
	return output, collector
}

// EmitFile compiles path without evaluating anything and returns the
// rendered module.
func EmitFile(path string) (string, *diagnostics.Collector) {
	collector := diagnostics.NewWithWriter(nil)
	_, module := runPipeline(path, nil, collector)
	return module, collector
}

func runPipeline(path string, engine *jit.Engine, collector *diagnostics.Collector) (string, string) {
	file, err := os.Open(path)
	if err != nil {
		collector.ReportAndSave(diagnostics.Diag{Message: fmt.Sprintf("failed to open file: %v", err)})
		return "", ""
	}
	defer file.Close()

	backend := llvmbackend.New(path)
	defer backend.Dispose()

	session := driver.NewSession(path, backend, engine, nil)

	var out bytes.Buffer
	err = session.Run(file, &out, collector)
	if err != nil && err != diagnostics.COMPILER_ERROR_FOUND {
		collector.ReportAndSave(diagnostics.Diag{Message: err.Error()})
	}
	return out.String(), session.Module()
}
