package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/logging"
	"github.com/abhisek/focusflow/internal/pipeline"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a video as educational or distracting",
	Example: `  focusflow classify --title "Calculus Part 3: Integration" --channel "MIT OpenCourseWare"
  echo '{"title":"Epic prank compilation"}' | focusflow classify --stdin --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fromStdin, _ := cmd.Flags().GetBool("stdin")
		explain, _ := cmd.Flags().GetBool("explain")
		asJSON, _ := cmd.Flags().GetBool("json")
		offline, _ := cmd.Flags().GetBool("offline")
		record, _ := cmd.Flags().GetBool("record")

		var req classifier.Request
		if fromStdin {
			if cmd.InOrStdin() == os.Stdin && stdinIsTerminal() {
				return fmt.Errorf("--stdin expects a JSON request on standard input")
			}
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			if req, err = classifier.DecodeRequest(raw); err != nil {
				return err
			}
		} else {
			req.Title, _ = cmd.Flags().GetString("title")
			req.Description, _ = cmd.Flags().GetString("description")
			req.Channel, _ = cmd.Flags().GetString("channel")
		}

		var p *pipeline.Pipeline
		if record {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			if p, err = buildPipeline(e.cfg, e.logger, pipeline.WithEventRepo(e.store.EventRepo())); err != nil {
				return err
			}
		} else {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, JSON: cfg.Logging.JSON})
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck
			if p, err = buildPipeline(cfg, logger); err != nil {
				return err
			}
		}

		d := p.Decide(ctx, pipeline.Request{Request: req, Offline: offline})

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}

		printDecision(cmd.OutOrStdout(), d)
		if explain && !offline {
			clean := pipeline.Clean(req)
			printExplanation(cmd.OutOrStdout(), p.Engine().Explain(clean.Title, clean.Description, clean.Channel))
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().String("title", "", "Video title")
	classifyCmd.Flags().String("description", "", "Video description")
	classifyCmd.Flags().String("channel", "", "Channel name")
	classifyCmd.Flags().Bool("stdin", false, `Read a JSON request {"title","description","channel"} from stdin`)
	classifyCmd.Flags().Bool("explain", false, "Show matched patterns and adjustments")
	classifyCmd.Flags().Bool("json", false, "Print the decision as JSON")
	classifyCmd.Flags().Bool("offline", false, "Decide as if the host were offline")
	classifyCmd.Flags().Bool("record", false, "Record the decision in the event log")
}

var (
	eduColor  = color.New(color.FgGreen, color.Bold)
	distColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

func verdictLabel(educational bool) string {
	if educational {
		return eduColor.Sprint("EDUCATIONAL")
	}
	return distColor.Sprint("DISTRACTING")
}

func printDecision(w io.Writer, d pipeline.Decision) {
	fmt.Fprintf(w, "%s  %s\n", verdictLabel(d.Educational), dimColor.Sprintf("(source: %s)", d.Source))
	if v := d.Verdict; v != nil {
		fmt.Fprintf(w, "Confidence:  %.2f\n", v.Confidence)
		fmt.Fprintf(w, "Scores:      educational %d / distracting %d\n", v.EducationalScore, v.DistractingScore)
		fmt.Fprintf(w, "Reasoning:   %s\n", v.Summary())
	}
	if fb := d.Fallback; fb != nil {
		fmt.Fprintf(w, "Fallback:    score %d (keywords %d edu / %d dist)", fb.Score, fb.EducationalMatches, fb.DistractingMatches)
		if len(fb.Overrides) > 0 {
			fmt.Fprintf(w, ", overrides: %s", strings.Join(fb.Overrides, ", "))
		}
		fmt.Fprintln(w)
	}
}

func printExplanation(w io.Writer, x classifier.Explanation) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Words: %d  numbers: %v  year: %v  acronym: %v\n",
		x.Context.WordCount, x.Context.HasNumbers, x.Context.HasYear, x.Context.HasAcronym)
	if x.ChannelBonus {
		fmt.Fprintf(w, "Channel bonus: +%d\n", classifier.ChannelBonus)
	}
	for _, m := range x.EducationalMatches {
		fmt.Fprintf(w, "  %s %s\n", eduColor.Sprint("+"), m)
	}
	for _, m := range x.DistractingMatches {
		fmt.Fprintf(w, "  %s %s\n", distColor.Sprint("-"), m)
	}
	for _, a := range x.Adjustments {
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("~"), a)
	}
}

// stdinIsTerminal is used to refuse --stdin when nothing is piped in.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
