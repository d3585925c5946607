package commands

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"goalpulse/internal/model"
)

// seedCmd loads a small set of demo records for local development.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo goals and tasks into the storage backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		now := time.Now()

		goals := []model.Goal{
			{
				ID:         uuid.NewString(),
				Title:      "Learn Go",
				Category:   model.CategoryEducation,
				Status:     model.GoalActive,
				StartDate:  now.AddDate(0, 0, -45),
				TargetDate: now.AddDate(0, 0, 45),
			},
			{
				ID:         uuid.NewString(),
				Title:      "Run a half marathon",
				Category:   model.CategoryHealth,
				Status:     model.GoalActive,
				StartDate:  now.AddDate(0, 0, -60),
				TargetDate: now.AddDate(0, 0, 5),
			},
			{
				ID:         uuid.NewString(),
				Title:      "Emergency fund",
				Category:   model.CategoryFinancial,
				Status:     model.GoalActive,
				StartDate:  now.AddDate(0, 0, -90),
				TargetDate: now.AddDate(0, 0, -10),
			},
		}

		taskCount := 0
		for gi, goal := range goals {
			if err := db.PutGoal(ctx, goal); err != nil {
				return err
			}
			for ti := 0; ti < 6; ti++ {
				task := model.Task{
					ID:               uuid.NewString(),
					GoalID:           goal.ID,
					Title:            goal.Title + " task",
					Status:           model.TaskPending,
					Priority:         model.PriorityMedium,
					EstimatedMinutes: 30 + 15*ti,
				}
				// Earlier tasks are done, spread over the last days so the
				// weekly charts and the streak have something to show.
				if ti < 3-gi/2 {
					completedAt := now.AddDate(0, 0, -ti).Add(-3 * time.Hour)
					task.Status = model.TaskCompleted
					task.CompletedAt = &completedAt
				}
				if err := db.PutTask(ctx, task); err != nil {
					return err
				}
				taskCount++
			}
		}

		log.Info().Int("goals", len(goals)).Int("tasks", taskCount).Msg("Seeded demo data")
		return nil
	},
}
