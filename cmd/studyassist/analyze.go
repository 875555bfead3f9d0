package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var analyzeCourse string

// analyzeCmd runs a syllabus PDF through extraction and AI analysis, then
// merges the derived tasks into the local store.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf>",
	Short: "Analyze a syllabus PDF and derive tasks from its dated events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		pipeline, err := a.pipeline()
		if err != nil {
			return err
		}

		analysis, err := pipeline.AnalyzeDocument(cmd.Context(), blob)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		if analyzeCourse != "" {
			tasks := pipeline.DeriveTasks(analysis, analyzeCourse)
			added := a.state.MergeImport(tasks, nil)
			fmt.Printf("Merged %d tasks for course %q\n", added, analyzeCourse)
		}
		return nil
	},
}

// planCmd generates a weekly study plan from upcoming tasks.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate an AI weekly study plan from upcoming tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		p, err := a.planner()
		if err != nil {
			return err
		}

		plan, err := p.GeneratePlan(cmd.Context(), a.state.UpcomingTasks())
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCourse, "course", "", "course name to attach derived tasks to")
}
