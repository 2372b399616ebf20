package main

import (
	"fmt"
	"log"
	"os"

	llvmbackend "github.com/HicaroD/kaleido/internal/backend/llvm"
	"github.com/HicaroD/kaleido/internal/config"
	"github.com/HicaroD/kaleido/internal/diagnostics"
	"github.com/HicaroD/kaleido/internal/driver"
	"github.com/HicaroD/kaleido/internal/jit"
)

var DevMode string

func main() {
	config.SetDevMode(DevMode == "1")
	if config.DEV {
		fmt.Println("[DEV MODE] initialized")
	}

	args, err := cli(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	configDir, envs, err := config.SetupConfigDir()
	if err != nil {
		log.Fatal(err)
	}

	buildType := args.BuildType
	if !args.BuildTypeSet {
		buildType, err = envs.BuildType()
		if err != nil {
			log.Fatal(err)
		}
	}

	switch args.Command {
	case COMMAND_HELP:
		fmt.Print(HELP_COMMAND)
	case COMMAND_ENV:
		fmt.Printf("CONFIG_DIR='%s'\n", configDir)
		envs.ShowAll(os.Stdout)
	case COMMAND_REPL:
		os.Exit(repl(envs, configDir, buildType))
	case COMMAND_RUN:
		os.Exit(runFile(args.Path, buildType))
	case COMMAND_EMIT:
		os.Exit(emitFile(args.Path))
	}
}

func debugLogger() *log.Logger {
	if !config.DEV {
		return nil
	}
	return log.New(os.Stderr, "", log.Ltime)
}

func newEngine(buildType config.BuildType) *jit.Engine {
	engine, err := jit.New(buildType, config.DefaultPasses(buildType), debugLogger())
	if err != nil {
		log.Fatal(err)
	}
	return engine
}

func runFile(path string, buildType config.BuildType) int {
	file, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	backend := llvmbackend.New(path)
	defer backend.Dispose()
	engine := newEngine(buildType)
	defer engine.Dispose()

	session := driver.NewSession(path, backend, engine, debugLogger())
	collector := diagnostics.NewWithWriter(os.Stderr)

	err = session.Run(file, os.Stdout, collector)
	if err != nil {
		if err != diagnostics.COMPILER_ERROR_FOUND {
			log.Print(err)
		}
		return 1
	}
	return 0
}

func emitFile(path string) int {
	file, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	backend := llvmbackend.New(path)
	defer backend.Dispose()

	session := driver.NewSession(path, backend, nil, debugLogger())
	collector := diagnostics.NewWithWriter(os.Stderr)

	err = session.Run(file, os.Stdout, collector)
	fmt.Print(session.Module())
	if err != nil {
		if err != diagnostics.COMPILER_ERROR_FOUND {
			log.Print(err)
		}
		return 1
	}
	return 0
}
