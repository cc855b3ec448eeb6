package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/cli"
)

func questionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Show the questionnaire and option weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderQuestions(catalog.Questions()))
			return err
		},
	}
}

func bandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "Show the risk profile bands and suggested allocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBands(catalog.Bands()))
			return err
		},
	}
}
