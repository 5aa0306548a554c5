// Command onboard is an onboarding assistant that answers questions with
// a hosted language model and highlights the passage each answer cites.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/onboard/internal/adapters/driven/ai"
	"github.com/custodia-labs/onboard/internal/adapters/driven/config/env"
	"github.com/custodia-labs/onboard/internal/adapters/driven/config/file"
	"github.com/custodia-labs/onboard/internal/adapters/driven/fetch"
	"github.com/custodia-labs/onboard/internal/adapters/driven/markdown"
	"github.com/custodia-labs/onboard/internal/adapters/driven/reference"
	"github.com/custodia-labs/onboard/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/onboard/internal/adapters/driving/cli"
	"github.com/custodia-labs/onboard/internal/adapters/driving/web"
	"github.com/custodia-labs/onboard/internal/core/services"
	"github.com/custodia-labs/onboard/internal/logger"
	"github.com/custodia-labs/onboard/internal/normalisers"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envCfg, err := env.Load()
	if err != nil {
		return err
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	envCfg.Apply(settings)

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}
	if err := promptStore.Watch(ctx); err != nil {
		logger.Debug("Prompt hot reload disabled: %v", err)
	}

	store, err := sqlite.NewStore(envCfg.DataDir)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close()

	references := services.NewReferenceLibrary(reference.NewSource(settings.ReferenceDir))
	citations := services.NewCitationService(references, markdown.NewRenderer())

	llm := ai.Init(&settings.LLM)
	defer llm.Close()
	for _, w := range llm.Warnings {
		logger.Debug("%s", w)
	}

	chat := services.NewChatService(llm.LLMService, citations,
		services.NewPromptBuilder(promptStore, references), *settings)

	documents := services.NewDocumentService(
		store.DocumentStore(),
		store.RoleStore(),
		normalisers.NewDefaultRegistry(),
		fetch.New(fetch.Config{UserAgent: "onboard/" + version}),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Chat:        chat,
		Citation:    citations,
		References:  references,
		Documents:   documents,
		Settings:    settingsService,
		RevealDelay: settings.Chat.CitationDelay,
		Server: web.Config{
			Addr:      envCfg.ServerAddr,
			RateLimit: envCfg.RateLimit,
			RateBurst: envCfg.RateBurst,
		},
	})

	return cli.ExecuteContext(ctx)
}
