package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/surveykit"
	"github.com/aretw0/surveykit/internal/adapters/file"
	"github.com/aretw0/surveykit/internal/logging"
	"github.com/aretw0/surveykit/internal/presentation/tui"
	"github.com/aretw0/surveykit/pkg/domain"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
)

func formatFlag(cmd *cobra.Command) (outputFormat, error) {
	f, _ := cmd.Flags().GetString("format")
	switch outputFormat(f) {
	case formatText, formatJSON:
		return outputFormat(f), nil
	}
	return "", fmt.Errorf("unknown format %q: use text or json", f)
}

// newEngine builds the facade from the persistent flags.
func newEngine(cmd *cobra.Command) (*surveykit.Engine, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	strict, _ := cmd.Flags().GetBool("strict")
	format, _ := cmd.Flags().GetString("format")

	// --format json also switches the logs to JSON.
	logger := logging.NewWriter(cmd.ErrOrStderr(), level, outputFormat(format) == formatJSON)
	opts := []surveykit.Option{surveykit.WithLogger(logger)}
	if strict {
		opts = append(opts, surveykit.WithStrictAnswers())
	}
	return surveykit.New(opts...), nil
}

func loadInputs(docPath, answersPath string) (*domain.SchemaNode, domain.AnswerSet, error) {
	doc, err := file.ReadDocument(docPath)
	if err != nil {
		return nil, nil, err
	}
	if answersPath == "" {
		return doc, domain.AnswerSet{}, nil
	}
	answers, err := file.ReadAnswers(answersPath)
	if err != nil {
		return nil, nil, err
	}
	return doc, answers, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderer(cmd *cobra.Command) *tui.Renderer {
	return tui.NewRenderer(cmd.OutOrStdout())
}

// parseManual reads --manual values of the form id=score.
func parseManual(values []string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(values))
	for _, v := range values {
		id, raw, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid manual score %q: expected id=score", v)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid manual score %q: %w", v, err)
		}
		out[strings.TrimSpace(id)] = score
	}
	return out, nil
}
