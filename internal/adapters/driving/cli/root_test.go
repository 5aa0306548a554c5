package cli

import (
	"bytes"
	"context"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/onboard/internal/adapters/driven/markdown"
	"github.com/custodia-labs/onboard/internal/adapters/driven/reference"
	"github.com/custodia-labs/onboard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/onboard/internal/adapters/driving/web"
	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/core/services"
	"github.com/custodia-labs/onboard/internal/normalisers"
)

// stubLLM is a driven.LLMService returning a fixed reply.
type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) ModelName() string            { return "stub-model" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

var testReferenceFS = fstest.MapFS{
	"01-welcome.md": {Data: []byte("# Welcome\n\nGlad you're here.\n\n## First day\n\nCollect your laptop from IT.\n")},
	"02-tooling.md": {Data: []byte("# Tooling\n\nWe use **Go** for all\nbackend services.\n")},
}

// testLLM is the completion stub wired by setupTestServices.
var testLLM *stubLLM

// setupTestServices wires real services over in-memory stores and returns
// a cleanup func that unwires them and resets command flags.
func setupTestServices() func() {
	testLLM = &stubLLM{reply: "Hello!"}

	refs := services.NewReferenceLibrary(reference.NewFSSource(testReferenceFS, "test"))
	citations := services.NewCitationService(refs, markdown.NewRenderer())
	chat := services.NewChatService(testLLM, citations, services.NewPromptBuilder(nil, refs), domain.DefaultAppSettings())

	docStore := memory.NewDocumentStore()
	docs := services.NewDocumentService(docStore, memory.NewRoleStore(docStore), normalisers.NewDefaultRegistry(), nil)

	SetServices(Services{
		Chat:       chat,
		Citation:   citations,
		References: refs,
		Documents:  docs,
		Settings:   services.NewSettingsService(memory.NewConfigStore(), nil),
	})

	return func() {
		SetServices(Services{
			RevealDelay: domain.DefaultAppSettings().Chat.CitationDelay,
			Server:      web.Config{},
		})
		testLLM = nil
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// resetFlags restores every flag in the tree to its default so state from
// one Execute does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil) //nolint:errcheck
		} else {
			_ = f.Value.Set(f.DefValue) //nolint:errcheck
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
