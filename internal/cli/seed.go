package cli

import (
	"context"
	"fmt"
	"os"

	"aptitude-quiz-service/internal/config"
	"aptitude-quiz-service/internal/domain"
	"aptitude-quiz-service/internal/infra/postgres"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type questionFile struct {
	Questions []domain.Question `yaml:"questions"`
}

// NewSeedCmd loads a YAML question bank into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert questions from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "config/questions.yaml", "YAML question bank")
	return cmd
}

func readQuestionFile(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var parsed questionFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parsed.Questions, nil
}

func runSeed(ctx context.Context, cfg config.Config, path string) error {
	if cfg.Postgres.URL == "" {
		return errNoPostgres
	}
	questions, err := readQuestionFile(path)
	if err != nil {
		return err
	}

	db := postgres.OpenBun(cfg.Postgres.URL)
	defer db.Close()

	n, err := postgres.SeedQuestions(ctx, db, questions)
	if err != nil {
		return err
	}
	log.Info().Int("questions", n).Str("file", path).Msg("seeded question bank")
	return nil
}
