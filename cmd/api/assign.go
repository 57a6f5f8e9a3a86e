package main

import (
	"errors"
	"fmt"
	"strings"

	"wtms/internal/models"
	"wtms/internal/repository"
	"wtms/pkg/database"
	"wtms/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var assignOpts struct {
	workerID    int64
	title       string
	description string
	due         string
}

// assign adalah tooling admin untuk membuat work baru bagi seorang worker.
var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a new work to a worker",
	RunE: func(cmd *cobra.Command, _ []string) error {
		work, err := newWorkFromFlags()
		if err != nil {
			return err
		}

		cfg := loadConfig()
		ctx := contextOrBackground(cmd)
		db, err := database.ConnectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		store := repository.NewPostgres(db)
		exists, err := store.WorkerExists(ctx, work.AssignedTo)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("worker %d: %w", work.AssignedTo, models.ErrNotFound)
		}
		if err := store.CreateWork(ctx, &work); err != nil {
			return err
		}

		logger.AuditLogger.Info("Work assigned",
			zap.Int64("work_id", work.ID),
			zap.Int64("worker_id", work.AssignedTo),
			zap.String("due_date", work.DueDate.String()),
		)
		fmt.Printf("work %d assigned to worker %d (due %s)\n", work.ID, work.AssignedTo, work.DueDate)
		return nil
	},
}

func newWorkFromFlags() (models.Work, error) {
	if assignOpts.workerID <= 0 {
		return models.Work{}, errors.New("--worker must be a positive id")
	}
	if strings.TrimSpace(assignOpts.title) == "" {
		return models.Work{}, errors.New("--title is required")
	}
	due, err := models.ParseDate(assignOpts.due)
	if err != nil {
		return models.Work{}, fmt.Errorf("--due: %w", err)
	}
	return models.Work{
		Title:       assignOpts.title,
		Description: assignOpts.description,
		AssignedTo:  assignOpts.workerID,
		DueDate:     due,
		Status:      models.StatusPending,
	}, nil
}

func init() {
	assignCmd.Flags().Int64Var(&assignOpts.workerID, "worker", 0, "worker id")
	assignCmd.Flags().StringVar(&assignOpts.title, "title", "", "work title")
	assignCmd.Flags().StringVar(&assignOpts.description, "description", "", "work description")
	assignCmd.Flags().StringVar(&assignOpts.due, "due", "", "due date (YYYY-MM-DD)")
}
