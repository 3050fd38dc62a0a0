package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question from the terminal",
	Long: `Run a single retrieval-grounded question/answer cycle without starting
the HTTP server. The answer and its cited sources are printed to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var flagAskTimeout time.Duration

func init() {
	askCmd.Flags().DurationVar(&flagAskTimeout, "timeout", 90*time.Second, "Abort the request after this long")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	answerer, err := newAnswerer(cfg)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(cmd.Context(), flagAskTimeout)
	defer cancel()

	text, sources, err := answerer.Answer(ctx, question)
	if err != nil {
		return err
	}

	fmt.Println(text)
	if len(sources) > 0 {
		fmt.Println()
		for _, src := range sources {
			printInfo("", fmt.Sprintf("source: %s", src))
		}
	}
	return nil
}
