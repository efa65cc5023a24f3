package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/ski/internal/compiler"
	"github.com/roach88/ski/internal/store"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadVocabulary returns the builtins extended with each definitions file.
func loadVocabulary(defs []string) (*compiler.Vocabulary, error) {
	vocab := compiler.Builtins()
	for _, path := range defs {
		if _, err := compiler.LoadDefinitions(path, vocab); err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load definitions %s", path), err)
		}
	}
	return vocab, nil
}

// termExpression turns command-line words into a Build expression.
// Non-negative decimal words become numerals; Build rejects those above
// numeral.MaxValue.
func termExpression(args []string) []any {
	expr := make([]any, len(args))
	for i, arg := range args {
		if n, err := strconv.ParseInt(arg, 10, 64); err == nil && n >= 0 {
			expr[i] = n
			continue
		}
		expr[i] = arg
	}
	return expr
}

func openStore(path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to open database %s", path), err)
	}
	return st, nil
}

// recordRuns appends runs to the database at path. An empty path records
// nothing.
func recordRuns(ctx context.Context, path string, runs ...store.Run) error {
	if path == "" {
		return nil
	}
	st, err := openStore(path)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, run := range runs {
		if _, err := st.WriteRun(ctx, run); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}
	return nil
}

// fail reports err in JSON mode and returns it as an ExitError. Text mode
// leaves printing to main.
func fail(f *OutputFormatter, exitCode int, code, message string, err error, details any) error {
	if f.JSON() {
		msg := message
		if err != nil {
			msg = fmt.Sprintf("%s: %v", message, err)
		}
		if encErr := f.Error(code, msg, details); encErr != nil {
			return encErr
		}
	}
	return WrapExitError(exitCode, message, err)
}
