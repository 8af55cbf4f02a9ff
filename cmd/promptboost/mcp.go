// ABOUTME: mcp serve command: exposes boost_prompt as an MCP tool over stdio
// ABOUTME: Discovery is lazy per call so a dead host never blocks server start

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/promptboost/promptboost/internal/boost"
	"github.com/promptboost/promptboost/internal/config"
	"github.com/promptboost/promptboost/internal/instructions"
	"github.com/promptboost/promptboost/internal/log"
	"github.com/promptboost/promptboost/internal/mcp"
	"github.com/promptboost/promptboost/internal/registry"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the boost_prompt tool over stdio",
	Long: "Serve the boost_prompt tool over stdio for MCP clients.\n\n" +
		"The server answers JSON-RPC requests on stdin and writes responses to\n" +
		"stdout, one message per line. Model selection is headless: the persisted\n" +
		"preference is used, and calls fail with a hint when none is set.",
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	settings := loadSettings()
	provider, err := buildProvider(settings)
	if err != nil {
		return err
	}
	reg := newRegistry(provider, settings)

	if err := instructions.EnsureExists(config.GlobalDir()); err != nil {
		log.Warn("instructions: %v", err)
	}

	boostFn := func(ctx context.Context, prompt string) (string, error) {
		if len(reg.Models()) == 0 {
			refreshOrSeed(ctx, reg)
		}

		model, err := reg.Resolve(ctx, registry.HeadlessUI{})
		if err != nil {
			return "", err
		}
		if model == nil {
			return "", errors.New("no model configured; run 'promptboost models select' in a terminal")
		}

		runCtx := ctx
		if timeout := settings.RequestTimeout(); timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		// The template is re-read per call so edits apply without a restart.
		instrText := instructions.Read(config.GlobalDir())
		opts := boost.Options{MaxOutputChars: settings.MaxOutputCharsOrDefault()}

		res := boost.Run(runCtx, provider, model, instrText, prompt, opts)
		if res.Status != boost.StatusSuccess {
			return "", res.Err
		}
		return res.Text, nil
	}

	log.Info("mcp server starting, version %s", version)
	return mcp.NewServer(version, boostFn).Serve(cmd.Context())
}
