package api

import (
	"time"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

// View structs define the JSON response shapes. Foreign keys serialize as bare
// ids; gym and exercise references nest the full object.

// UserView is the full account representation with nested collections.
type UserView struct {
	UserID        int64              `json:"user_id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Username      string             `json:"username"`
	Preferences   []PreferenceView   `json:"preferences"`
	Workouts      []WorkoutView      `json:"workouts"`
	Notifications []NotificationView `json:"notifications"`
}

// PreferenceView is one crowd-level preference with nested gym data.
type PreferenceView struct {
	PreferenceID  int64     `json:"preference_id"`
	User          int64     `json:"user"`
	Gym           GymView   `json:"gym"`
	MaxCrowdLevel float64   `json:"max_crowd_level"`
	CreatedAt     time.Time `json:"created_at"`
}

// GymView is one gym with nested crowd data, latest snapshot first.
type GymView struct {
	GymID     int64          `json:"gym_id"`
	Name      string         `json:"name"`
	Location  string         `json:"location"`
	Type      string         `json:"type"`
	CreatedAt time.Time      `json:"created_at"`
	CrowdData []SnapshotView `json:"crowd_data"`
}

// SnapshotView is one raw crowd-data snapshot.
type SnapshotView struct {
	CrowdID        int64     `json:"crowd_id"`
	Gym            int64     `json:"gym"`
	Occupancy      int       `json:"occupancy"`
	PercentageFull *float64  `json:"percentage_full"`
	LastUpdated    time.Time `json:"last_updated"`
}

// ExerciseView is one catalog entry.
type ExerciseView struct {
	ExerciseID       int64   `json:"exercise_id"`
	Name             string  `json:"name"`
	BodyPart         string  `json:"body_part"`
	Equipment        *string `json:"equipment"`
	GifURL           *string `json:"gif_url"`
	Target           string  `json:"target"`
	SecondaryMuscles *string `json:"secondary_muscles"`
	Instructions     string  `json:"instructions"`
}

// WorkoutView is one workout with nested entries in creation order.
type WorkoutView struct {
	WorkoutID        int64       `json:"workout_id"`
	User             int64       `json:"user"`
	Date             string      `json:"date"`
	CreatedAt        time.Time   `json:"created_at"`
	WorkoutExercises []EntryView `json:"workout_exercises"`
}

// EntryView is one exercise entry within a workout.
type EntryView struct {
	EntryID  int64        `json:"entry_id"`
	Workout  int64        `json:"workout"`
	Exercise ExerciseView `json:"exercise"`
	Sets     int          `json:"sets"`
	Reps     int          `json:"reps"`
	Weight   *float64     `json:"weight"`
}

// NotificationView is one notification.
type NotificationView struct {
	NotificationID int64     `json:"notification_id"`
	User           int64     `json:"user"`
	Gym            int64     `json:"gym"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sent_at"`
}

func toUserView(detail domain.UserDetail) UserView {
	preferences := make([]PreferenceView, 0, len(detail.Preferences))
	for _, pref := range detail.Preferences {
		preferences = append(preferences, toPreferenceView(pref))
	}
	workouts := make([]WorkoutView, 0, len(detail.Workouts))
	for _, workout := range detail.Workouts {
		workouts = append(workouts, toWorkoutView(workout))
	}
	notifications := make([]NotificationView, 0, len(detail.Notifications))
	for _, n := range detail.Notifications {
		notifications = append(notifications, toNotificationView(n))
	}
	return UserView{
		UserID:        detail.ID,
		Name:          detail.Name,
		Email:         detail.Email,
		Username:      detail.Username,
		Preferences:   preferences,
		Workouts:      workouts,
		Notifications: notifications,
	}
}

func toPreferenceView(pref domain.Preference) PreferenceView {
	return PreferenceView{
		PreferenceID:  pref.ID,
		User:          pref.UserID,
		Gym:           toGymView(domain.GymDetail{Gym: pref.Gym, CrowdData: []domain.CrowdSnapshot{}}),
		MaxCrowdLevel: pref.MaxCrowdLevel,
		CreatedAt:     pref.CreatedAt,
	}
}

func toGymView(detail domain.GymDetail) GymView {
	snapshots := make([]SnapshotView, 0, len(detail.CrowdData))
	for _, snap := range detail.CrowdData {
		snapshots = append(snapshots, toSnapshotView(snap))
	}
	return GymView{
		GymID:     detail.ID,
		Name:      detail.Name,
		Location:  detail.Location,
		Type:      detail.Type,
		CreatedAt: detail.CreatedAt,
		CrowdData: snapshots,
	}
}

func toSnapshotView(snap domain.CrowdSnapshot) SnapshotView {
	return SnapshotView{
		CrowdID:        snap.ID,
		Gym:            snap.GymID,
		Occupancy:      snap.Occupancy,
		PercentageFull: snap.PercentageFull,
		LastUpdated:    snap.LastUpdated,
	}
}

func toExerciseView(ex domain.Exercise) ExerciseView {
	return ExerciseView{
		ExerciseID:       ex.ID,
		Name:             ex.Name,
		BodyPart:         ex.BodyPart,
		Equipment:        ex.Equipment,
		GifURL:           ex.GifURL,
		Target:           ex.Target,
		SecondaryMuscles: ex.SecondaryMuscles,
		Instructions:     ex.Instructions,
	}
}

func toWorkoutView(detail domain.WorkoutDetail) WorkoutView {
	entries := make([]EntryView, 0, len(detail.Entries))
	for _, entry := range detail.Entries {
		entries = append(entries, toEntryView(entry))
	}
	return WorkoutView{
		WorkoutID:        detail.ID,
		User:             detail.UserID,
		Date:             detail.Date.Format("2006-01-02"),
		CreatedAt:        detail.CreatedAt,
		WorkoutExercises: entries,
	}
}

func toEntryView(entry domain.WorkoutEntry) EntryView {
	return EntryView{
		EntryID:  entry.ID,
		Workout:  entry.WorkoutID,
		Exercise: toExerciseView(entry.Exercise),
		Sets:     entry.Sets,
		Reps:     entry.Reps,
		Weight:   entry.Weight,
	}
}

func toNotificationView(n domain.Notification) NotificationView {
	return NotificationView{
		NotificationID: n.ID,
		User:           n.UserID,
		Gym:            n.GymID,
		Message:        n.Message,
		SentAt:         n.SentAt,
	}
}
