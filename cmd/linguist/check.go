package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"linguist/internal/check"
	"linguist/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Spell check files and directories",
	Long: `Spell check files, or every .txt, .md, .markdown and .rst file under the
given directories. Exits with status 1 when a misspelling is found or a file
cannot be read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("timings", false, "print phase timings to stderr")
}

type jsonResult struct {
	Path     string          `json:"path"`
	Error    string          `json:"error,omitempty"`
	Findings []check.Finding `json:"findings"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseProgressMode(uiFlag)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	timer := observ.NewTimer()
	ctx := cmd.Context()
	o, err := buildOracle(ctx, cmd, cfg, timer)
	if err != nil {
		return err
	}
	files, err := check.Collect(args, nil)
	if err != nil {
		return err
	}

	req := check.Request{Files: files, Oracle: o, Jobs: jobs}
	done := timer.Track("check")
	var results []check.Result
	if format == "pretty" && !quiet(cmd) && wantProgress(mode, len(files)) {
		results, err = runCheckWithUI(ctx, "checking spelling", req)
	} else {
		results, err = check.Files(ctx, req)
	}
	done(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = renderJSON(out, results)
	} else {
		renderPretty(out, results, quiet(cmd))
	}
	if err != nil {
		return err
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if failed(results) {
		return &exitError{code: 1}
	}
	return nil
}

func failed(results []check.Result) bool {
	for _, r := range results {
		if r.Err != nil || len(r.Findings) > 0 {
			return true
		}
	}
	return false
}

func renderPretty(out io.Writer, results []check.Result, quiet bool) {
	pathColor := color.New(color.Bold)
	wordColor := color.New(color.FgRed)
	hintColor := color.New(color.FgGreen)
	files := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "%s: %s\n", pathColor.Sprint(r.Path), color.RedString(r.Err.Error()))
			continue
		}
		if len(r.Findings) > 0 {
			files++
		}
		for _, f := range r.Findings {
			line := fmt.Sprintf("%s:%d:%d: %s",
				pathColor.Sprint(r.Path), f.Range.Start.Line+1, f.Range.Start.Char+1, wordColor.Sprint(f.Word))
			if len(f.Suggestions) > 0 {
				line += " → " + hintColor.Sprint(strings.Join(f.Suggestions, ", "))
			}
			fmt.Fprintln(out, line)
		}
	}
	if quiet {
		return
	}
	total := check.Count(results)
	if total == 0 {
		fmt.Fprintf(out, "%s %d files checked\n", color.GreenString("ok"), len(results))
		return
	}
	fmt.Fprintf(out, "%d misspelled words in %d of %d files\n", total, files, len(results))
}

func renderJSON(out io.Writer, results []check.Result) error {
	payload := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{Path: r.Path, Findings: r.Findings}
		if jr.Findings == nil {
			jr.Findings = []check.Finding{}
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		payload = append(payload, jr)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
