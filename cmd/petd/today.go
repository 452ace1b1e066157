package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"petd/internal/model"
	"petd/internal/schedule"
	"petd/internal/storage"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's care tasks without starting the TUI",
	RunE:  runToday,
}

func init() {
	todayCmd.Flags().StringVar(&flagPet, "pet", "", "only show tasks for the named pet")
}

func runToday(cmd *cobra.Command, args []string) error {
	_, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()
	petRows, err := repo.ListPets(ctx, storage.PetListFilter{})
	if err != nil {
		return fmt.Errorf("load pets: %w", err)
	}
	names := make(map[string]string, len(petRows))
	filter := schedule.PetFilterAll
	for _, row := range petRows {
		names[row.ID] = row.Name
		if flagPet != "" && strings.EqualFold(row.Name, flagPet) {
			filter = row.ID
		}
	}
	if flagPet != "" && filter == schedule.PetFilterAll {
		return fmt.Errorf("no pet named %q", flagPet)
	}

	taskRows, err := repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(taskRows))
	for _, row := range taskRows {
		tasks = append(tasks, storage.TaskToModel(row))
	}

	buckets := schedule.Classify(tasks, time.Now(), filter)
	out := cmd.OutOrStdout()
	printBucket(out, "Overdue", buckets.Overdue, names)
	printBucket(out, "Today", buckets.Today, names)
	printBucket(out, "Upcoming", buckets.Upcoming, names)
	return nil
}

func printBucket(out io.Writer, title string, tasks []model.Task, names map[string]string) {
	fmt.Fprintf(out, "%s:\n", title)
	if len(tasks) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	for _, task := range tasks {
		name := names[task.PetID]
		if name == "" {
			name = task.PetID
		}
		fmt.Fprintf(out, "  %s  %s: %s [%s]\n", task.EffectiveDueDate().Format("2006-01-02 15:04"), name, task.Title, task.Type)
	}
}
