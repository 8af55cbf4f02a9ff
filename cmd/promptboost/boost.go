// ABOUTME: boost command: reads a prompt, resolves a model, streams the enhancement
// ABOUTME: Handles file/stdin/arg input, the progress display, and exit codes

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/promptboost/promptboost/internal/boost"
	"github.com/promptboost/promptboost/internal/config"
	"github.com/promptboost/promptboost/internal/eligibility"
	"github.com/promptboost/promptboost/internal/instructions"
	"github.com/promptboost/promptboost/internal/log"
	"github.com/promptboost/promptboost/internal/registry"
	"github.com/promptboost/promptboost/internal/tui"
	"github.com/promptboost/promptboost/pkg/ai"
)

var (
	boostCmdModel   string
	boostCmdWrite   bool
	boostCmdRender  bool
	boostCmdPlain   bool
	boostCmdTimeout int
)

var boostCmd = &cobra.Command{
	Use:   "boost [file | - | prompt text...]",
	Short: "Enhance a prompt",
	Long: "Enhance a prompt with the configured model.\n\n" +
		"The prompt comes from a file path, from stdin (pass - or pipe input), or from\n" +
		"the remaining arguments joined as text. A single argument naming an existing\n" +
		"file is read as a file; quote multi-word prompts or pass them as several\n" +
		"arguments.\n\n" +
		"On success the enhanced prompt is written to stdout. On failure the original\n" +
		"prompt is written instead so pipelines never lose text, and the exit code is\n" +
		"non-zero.",
	Args: cobra.ArbitraryArgs,
	RunE: runBoost,
}

func init() {
	boostCmd.Flags().StringVarP(&boostCmdModel, "model", "m", "", "model name or ID for this run (bypasses the saved preference)")
	boostCmd.Flags().BoolVarP(&boostCmdWrite, "write", "w", false, "write the enhanced prompt back to the input file")
	boostCmd.Flags().BoolVar(&boostCmdRender, "render", false, "render the enhanced prompt as markdown")
	boostCmd.Flags().BoolVar(&boostCmdPlain, "plain", false, "disable the interactive progress display")
	boostCmd.Flags().IntVar(&boostCmdTimeout, "timeout", 0, "request timeout in seconds (overrides settings)")
	rootCmd.AddCommand(boostCmd)
}

// promptInput is the prompt text plus where it came from.
type promptInput struct {
	text     string
	filePath string // non-empty when read from a file
}

func readPromptInput(cmd *cobra.Command, args []string) (promptInput, error) {
	if len(args) == 1 && args[0] == "-" {
		return readAll(cmd.InOrStdin())
	}
	if len(args) == 1 {
		if fi, err := os.Stat(args[0]); err == nil && !fi.IsDir() {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return promptInput{}, fmt.Errorf("reading %s: %w", args[0], err)
			}
			return promptInput{text: string(data), filePath: args[0]}, nil
		}
	}
	if len(args) > 0 {
		return promptInput{text: strings.Join(args, " ")}, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return readAll(cmd.InOrStdin())
	}
	return promptInput{}, errors.New("no prompt given; pass text, a file path, or pipe stdin")
}

func readAll(r io.Reader) (promptInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return promptInput{}, fmt.Errorf("reading stdin: %w", err)
	}
	return promptInput{text: string(data)}, nil
}

func runBoost(cmd *cobra.Command, args []string) error {
	settings := loadSettings()

	in, err := readPromptInput(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(in.text) == "" {
		return errors.New("prompt is empty")
	}

	if boostCmdWrite {
		if in.filePath == "" {
			return errors.New("--write requires a file argument")
		}
		if !eligibility.Eligible(in.filePath, settings.FilePatternsOrDefault()) {
			return fmt.Errorf("%s does not match file_patterns in %s; not rewriting", in.filePath, config.SettingsFile())
		}
	}

	if err := instructions.EnsureExists(config.GlobalDir()); err != nil {
		log.Warn("instructions: %v", err)
	}
	instrText := instructions.Read(config.GlobalDir())

	provider, err := buildProvider(settings)
	if err != nil {
		return err
	}
	reg := newRegistry(provider, settings)
	refreshOrSeed(cmd.Context(), reg)

	interactive := !boostCmdPlain && tui.IsInteractive()

	model, err := pickModel(cmd.Context(), reg, interactive)
	if err != nil {
		return err
	}

	var res boost.Result
	if model == nil {
		res = boost.Terminated(in.text)
	} else {
		runCtx := cmd.Context()
		timeout := settings.RequestTimeout()
		if boostCmdTimeout > 0 {
			timeout = time.Duration(boostCmdTimeout) * time.Second
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, timeout)
			defer cancel()
		}
		opts := boost.Options{MaxOutputChars: settings.MaxOutputCharsOrDefault()}
		if interactive {
			res = runWithProgress(runCtx, provider, model, instrText, in.text, opts)
		} else {
			res = boost.Run(runCtx, provider, model, instrText, in.text, opts)
		}
	}

	switch res.Status {
	case boost.StatusSuccess:
		if boostCmdWrite {
			if err := writeBack(in.filePath, res.Text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", in.filePath)
			return nil
		}
		out := res.Text
		if boostCmdRender {
			out = renderMarkdown(out)
		}
		printText(cmd.OutOrStdout(), out)
		return nil

	case boost.StatusTerminated:
		fmt.Fprintln(cmd.ErrOrStderr(), "no model selected; prompt left unchanged")
		if !boostCmdWrite {
			printText(cmd.OutOrStdout(), res.Text)
		}
		return nil

	case boost.StatusCancelled:
		fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
		return &exitError{code: 130}

	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "boost failed: %v (details in %s)\n", res.Err, config.LogFile())
		if !boostCmdWrite {
			printText(cmd.OutOrStdout(), res.Text)
		}
		return &exitError{code: 1}
	}
}

// pickModel resolves the endpoint to use: the --model override when given,
// otherwise the preference chain with an interactive or headless UI.
func pickModel(ctx context.Context, reg *registry.Registry, interactive bool) (*ai.Model, error) {
	if boostCmdModel != "" {
		m := reg.Find(boostCmdModel)
		if m == nil {
			return nil, fmt.Errorf("model %q not found; run 'promptboost models list'", boostCmdModel)
		}
		return m, nil
	}

	var ui registry.UI = registry.HeadlessUI{}
	if interactive {
		ui = tui.InteractiveUI{}
	}
	return reg.Resolve(ctx, ui)
}

// runWithProgress runs the workflow in a goroutine while the progress
// display owns the terminal. Esc cancels the linked context; the display
// keeps running until the workflow reports back so the terminal is restored
// exactly once.
func runWithProgress(ctx context.Context, provider ai.ApiProvider, model *ai.Model, instrText, promptText string, opts boost.Options) boost.Result {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress := tui.NewProgress(model.Name, cancel)
	opts.OnDelta = func(delta string) {
		progress.AddChars(len(delta))
	}

	done := make(chan boost.Result, 1)
	go func() {
		res := boost.Run(runCtx, provider, model, instrText, promptText, opts)
		progress.Finish()
		done <- res
	}()

	if err := progress.Run(); err != nil {
		log.Warn("progress display: %v", err)
	}
	return <-done
}

// printText writes text with exactly one trailing newline.
func printText(w io.Writer, text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	io.WriteString(w, text)
}

// writeBack replaces the file's content, keeping its permission bits.
func writeBack(path, text string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), fi.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
