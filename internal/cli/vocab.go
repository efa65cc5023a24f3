package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ski/internal/term"
)

// VocabOptions holds flags for the vocab command.
type VocabOptions struct {
	*RootOptions
	Defs []string
}

// VocabEntry is one vocabulary name in JSON output.
type VocabEntry struct {
	Name string `json:"name"`
	Term string `json:"term"`
	Hash string `json:"hash"`
}

// notationWidth bounds the notation column of the vocab table.
const notationWidth = 48

// NewVocabCommand creates the vocab command.
func NewVocabCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VocabOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List the named terms",
		Long: `List every name usable in reduce and scenario files, with its
notation and content hash.

Examples:
  ski vocab
  ski vocab --defs defs.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocab(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Defs, "defs", nil, "CUE definitions file (repeatable)")

	return cmd
}

func runVocab(opts *VocabOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	vocab, err := loadVocabulary(opts.Defs)
	if err != nil {
		return fail(f, ExitCommandError, CodeInvalidInput, "invalid definitions", err, nil)
	}

	entries := make([]VocabEntry, 0, vocab.Len())
	for _, name := range vocab.Names() {
		t, _ := vocab.Lookup(name)
		hash, err := term.Hash(t)
		if err != nil {
			return fail(f, ExitCommandError, CodeInvalidInput, "hash "+name, err, nil)
		}
		entries = append(entries, VocabEntry{Name: name, Term: t.String(), Hash: hash})
	}

	if f.JSON() {
		return f.Success(entries)
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		t, _ := vocab.Lookup(e.Name)
		rows[i] = []string{e.Name, term.Truncate(t, notationWidth), e.Hash[:12]}
	}
	return f.Table([]string{"NAME", "TERM", "HASH"}, rows)
}
