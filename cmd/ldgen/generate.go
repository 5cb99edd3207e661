package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/use-agent/ldgen/batch"
	"github.com/use-agent/ldgen/config"
	"github.com/use-agent/ldgen/export"
	"github.com/use-agent/ldgen/models"
)

var (
	generateInputFile    string
	generateWordFile     string
	generateMarkdownFile string
	generateConcurrency  int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate schemas for a list of URLs",
	Long: `Read one URL per line from a file (or stdin), print a JSON-LD snippet for
each valid URL, and optionally write a Word (.doc) and Markdown export.
Invalid lines are reported on stderr and do not stop the run.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInputFile, "file", "f", "", "File with one URL per line (default: stdin)")
	generateCmd.Flags().StringVarP(&generateWordFile, "out", "o", "", "Write the Word export to this path")
	generateCmd.Flags().StringVar(&generateMarkdownFile, "markdown", "", "Write the Markdown export to this path")
	generateCmd.Flags().IntVar(&generateConcurrency, "concurrency", 1, "Titles fetched in parallel (1 = sequential)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	initLogger(cfg.Log, cmd.ErrOrStderr())

	in := cmd.InOrStdin()
	if generateInputFile != "" {
		f, err := os.Open(generateInputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		in = f
	}

	driver, _, err := newDriver(cfg, generateConcurrency)
	if err != nil {
		return fmt.Errorf("failed to initialise fetch engine: %w", err)
	}

	return generate(cmd.Context(), driver, in, cmd.OutOrStdout(), cmd.ErrOrStderr(), generateOutputs{
		Word:     generateWordFile,
		Markdown: generateMarkdownFile,
	})
}

// generateOutputs are the optional export paths.
type generateOutputs struct {
	Word     string
	Markdown string
}

// generate runs one batch over the lines of in. Snippets go to stdout in
// input order, failures to stderr.
func generate(ctx context.Context, driver *batch.Driver, in io.Reader, stdout, stderr io.Writer, out generateOutputs) error {
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	b, err := driver.ProcessAll(ctx, batch.SplitLines(string(raw)))
	if err != nil {
		return err
	}

	for _, o := range b.Outcomes {
		if !o.Succeeded() {
			fmt.Fprintf(stderr, "%s: %s\n", o.Input, failureMessage(o))
			continue
		}
		fmt.Fprintf(stdout, "// Schema #%d: %s\n%s\n\n", o.Number, o.Title, o.Snippet)
	}
	fmt.Fprintf(stderr, "%d of %d schemas generated\n", b.Generated, b.Total)

	items := export.ItemsFromBatch(b)
	if out.Word != "" {
		doc, err := export.Word(items)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.Word, doc, 0o644); err != nil {
			return fmt.Errorf("failed to write Word export: %w", err)
		}
	}
	if out.Markdown != "" {
		md, err := export.Markdown(items)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.Markdown, []byte(md), 0o644); err != nil {
			return fmt.Errorf("failed to write Markdown export: %w", err)
		}
	}
	return nil
}

func failureMessage(o models.Outcome) string {
	if o.Error == nil {
		return "failed"
	}
	return o.Error.Message
}
