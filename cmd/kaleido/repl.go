package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	llvmbackend "github.com/HicaroD/kaleido/internal/backend/llvm"
	"github.com/HicaroD/kaleido/internal/config"
	"github.com/HicaroD/kaleido/internal/diagnostics"
	"github.com/HicaroD/kaleido/internal/driver"
)

const CONTINUATION_PROMPT = "...    "

func repl(envs *config.Envs, configDir string, buildType config.BuildType) int {
	backend := llvmbackend.New("repl")
	defer backend.Dispose()
	engine := newEngine(buildType)
	defer engine.Dispose()

	session := driver.NewSession("<stdin>", backend, engine, debugLogger())
	collector := diagnostics.NewWithWriter(os.Stderr)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := envs.HistoryPath(configDir)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, ok := readUnit(ln, envs.PROMPT, CONTINUATION_PROMPT)
		if !ok {
			fmt.Println()
			return 0
		}

		result, err := session.HandleLine(src)
		if err != nil {
			collector.ReportAndSave(diagnostics.FromError(err))
			continue
		}
		if strings.TrimSpace(src) != "" {
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}
		printResult(os.Stdout, result)
	}
}

// readUnit keeps prompting while the input so far is an unfinished
// definition or expression. It reports false on Ctrl-D or Ctrl-C.
func readUnit(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}

		line, err := ln.Prompt(current)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !driver.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}

func printResult(w io.Writer, result driver.Result) {
	switch result.Kind {
	case driver.RESULT_DEFINITION:
		fmt.Fprintf(w, "Read function definition:\n%s", result.IR)
	case driver.RESULT_EXTERN:
		fmt.Fprintf(w, "Read extern:\n%s", result.IR)
	case driver.RESULT_EXPR:
		if result.HasValue {
			fmt.Fprintf(w, "Evaluated to %s\n", driver.FormatValue(result.Value))
			return
		}
		fmt.Fprintf(w, "Read top-level expression:\n%s", result.IR)
	case driver.RESULT_MODULE:
		fmt.Fprint(w, result.IR)
	}
}
