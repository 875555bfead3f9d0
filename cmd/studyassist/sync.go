package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncPush bool

// scanCmd lists the importable Canvas courses.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List Canvas courses eligible for import",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		courses, err := a.importer.ScanCourses(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range courses {
			fmt.Printf("%d\t%s\t%s\n", c.ID, c.CourseCode, c.Name)
		}
		return nil
	},
}

// syncCmd imports every valid Canvas course into the local store.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Canvas courses and assignments into the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		courses, err := a.importer.ScanCourses(cmd.Context())
		if err != nil {
			return err
		}

		tasks, converted := a.importer.ImportCourses(cmd.Context(), courses)
		added := a.state.MergeImport(tasks, converted)
		fmt.Printf("Imported %d courses, merged %d new tasks\n", len(converted), added)

		if syncPush {
			syncer, err := a.syncer()
			if err != nil {
				return err
			}
			if err := syncer.PushTasks(cmd.Context(), a.state.Tasks()); err != nil {
				return fmt.Errorf("push after sync: %w", err)
			}
			fmt.Println("Pushed tasks to backup store")
		}
		return nil
	},
}

// pushCmd pushes all local tasks to the backup store.
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push all local tasks to the backup store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		syncer, err := a.syncer()
		if err != nil {
			return err
		}
		tasks := a.state.Tasks()
		if err := syncer.PushTasks(cmd.Context(), tasks); err != nil {
			return err
		}
		fmt.Printf("Pushed %d tasks\n", len(tasks))
		return nil
	},
}

// pullCmd pulls remote tasks and merges them into the local store.
var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull tasks from the backup store into the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		syncer, err := a.syncer()
		if err != nil {
			return err
		}
		tasks, err := syncer.PullTasks(cmd.Context())
		if err != nil {
			return err
		}
		added := a.state.MergePulled(tasks)
		fmt.Printf("Pulled %d tasks, merged %d new\n", len(tasks), added)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncPush, "push", false, "push merged tasks to the backup store after import")
}
