package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/config"
	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
	persistence "github.com/AdeebK1129/GymCrowd-backend/internal/persistence/postgres"
)

type gymSeed struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Type     string `json:"type"`
}

type exerciseSeed struct {
	Name             string  `json:"name"`
	BodyPart         string  `json:"body_part"`
	Equipment        *string `json:"equipment"`
	GifURL           *string `json:"gif_url"`
	Target           string  `json:"target"`
	SecondaryMuscles *string `json:"secondary_muscles"`
	Instructions     string  `json:"instructions"`
}

// Loads gyms and exercises from JSON files into the database. Gyms are
// upserted by name so the seed can be re-run safely.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gymsPath := flag.String("gyms", "", "path to a JSON array of gyms")
	exercisesPath := flag.String("exercises", "", "path to a JSON array of exercises")
	flag.Parse()

	if *gymsPath == "" && *exercisesPath == "" {
		logger.Error("nothing to seed: pass -gyms and/or -exercises")
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := persistence.EnsureSchema(ctx, pool); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	if *gymsPath != "" {
		if err := seedGyms(ctx, persistence.NewGymRepository(pool), *gymsPath, logger); err != nil {
			logger.Error("seeding gyms failed", "error", err)
			os.Exit(1)
		}
	}

	if *exercisesPath != "" {
		if err := seedExercises(ctx, persistence.NewExerciseRepository(pool), *exercisesPath, logger); err != nil {
			logger.Error("seeding exercises failed", "error", err)
			os.Exit(1)
		}
	}
}

func seedGyms(ctx context.Context, repo *persistence.GymRepository, path string, logger *slog.Logger) error {
	var seeds []gymSeed
	if err := loadJSON(path, &seeds); err != nil {
		return err
	}
	for _, s := range seeds {
		gym, err := repo.Upsert(ctx, domain.Gym{Name: s.Name, Location: s.Location, Type: s.Type})
		if err != nil {
			return err
		}
		logger.Info("seeded gym", "gym_id", gym.ID, "name", gym.Name)
	}
	return nil
}

func seedExercises(ctx context.Context, repo *persistence.ExerciseRepository, path string, logger *slog.Logger) error {
	var seeds []exerciseSeed
	if err := loadJSON(path, &seeds); err != nil {
		return err
	}
	exercises := make([]domain.Exercise, 0, len(seeds))
	for _, s := range seeds {
		exercises = append(exercises, domain.Exercise{
			Name:             s.Name,
			BodyPart:         s.BodyPart,
			Equipment:        s.Equipment,
			GifURL:           s.GifURL,
			Target:           s.Target,
			SecondaryMuscles: s.SecondaryMuscles,
			Instructions:     s.Instructions,
		})
	}
	inserted, err := repo.BulkInsert(ctx, exercises)
	if err != nil {
		return err
	}
	logger.Info("seeded exercises", "count", inserted)
	return nil
}

func loadJSON(path string, target any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(target)
}
