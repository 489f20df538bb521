package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the relational model. crowd_data is append-only: rows are inserted
// by the reconciler and never updated.
const schema = `
CREATE TABLE IF NOT EXISTS gyms (
    gym_id      BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    location    TEXT NOT NULL,
    type        TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS crowd_data (
    crowd_id        BIGSERIAL PRIMARY KEY,
    gym_id          BIGINT NOT NULL REFERENCES gyms(gym_id) ON DELETE CASCADE,
    occupancy       INTEGER NOT NULL CHECK (occupancy >= 0),
    percentage_full DOUBLE PRECISION,
    last_updated    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS crowd_data_gym_updated_idx
    ON crowd_data (gym_id, last_updated DESC);

CREATE TABLE IF NOT EXISTS users (
    user_id       BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT users_email_key UNIQUE (email),
    CONSTRAINT users_username_key UNIQUE (username)
);

CREATE TABLE IF NOT EXISTS auth_tokens (
    token      TEXT PRIMARY KEY,
    user_id    BIGINT NOT NULL UNIQUE REFERENCES users(user_id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_preferences (
    preference_id   BIGSERIAL PRIMARY KEY,
    user_id         BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    gym_id          BIGINT NOT NULL REFERENCES gyms(gym_id) ON DELETE CASCADE,
    max_crowd_level DOUBLE PRECISION NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT user_preferences_user_id_gym_id_key UNIQUE (user_id, gym_id)
);

CREATE TABLE IF NOT EXISTS exercises (
    exercise_id       BIGSERIAL PRIMARY KEY,
    name              TEXT NOT NULL,
    body_part         TEXT NOT NULL,
    equipment         TEXT,
    gif_url           TEXT,
    target            TEXT NOT NULL,
    secondary_muscles TEXT,
    instructions      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_workouts (
    workout_id   BIGSERIAL PRIMARY KEY,
    user_id      BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    workout_date DATE NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS workout_exercises (
    entry_id    BIGSERIAL PRIMARY KEY,
    workout_id  BIGINT NOT NULL REFERENCES user_workouts(workout_id) ON DELETE CASCADE,
    exercise_id BIGINT NOT NULL REFERENCES exercises(exercise_id) ON DELETE CASCADE,
    sets        INTEGER NOT NULL CHECK (sets > 0),
    reps        INTEGER NOT NULL CHECK (reps > 0),
    weight      DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS notifications (
    notification_id BIGSERIAL PRIMARY KEY,
    user_id         BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    gym_id          BIGINT NOT NULL REFERENCES gyms(gym_id) ON DELETE CASCADE,
    message         TEXT NOT NULL,
    sent_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
