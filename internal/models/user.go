// ABOUTME: User profile model with biometric history and recent activity.
// ABOUTME: The PIN is stored separately and never appears on User.
package models

import (
	"fmt"
	"net/url"
	"strings"
)

// WeightPoint is one entry of the weight history.
type WeightPoint struct {
	Date   Date    `json:"date"`
	Weight float64 `json:"weight"`
}

// MassPoint is one entry of the muscle-mass history.
type MassPoint struct {
	Date Date    `json:"date"`
	Mass float64 `json:"mass"`
}

// SimpleWorkout is a dashboard activity entry: exercise and minutes spent.
type SimpleWorkout struct {
	Exercise string `json:"exercise"`
	Duration int    `json:"duration"`
}

// RecentWorkouts partitions recent activity into today and yesterday.
type RecentWorkouts struct {
	Today     []SimpleWorkout `json:"today"`
	Yesterday []SimpleWorkout `json:"yesterday"`
}

// User is the single local account's profile.
type User struct {
	Name              string         `json:"name"`
	Age               int            `json:"age"`
	Weight            float64        `json:"weight"`
	Height            float64        `json:"height"`
	AvatarURL         string         `json:"avatarUrl"`
	WorkoutStreak     int            `json:"workoutStreak"`
	MuscleMass        float64        `json:"muscleMass"`
	WeightHistory     []WeightPoint  `json:"weightHistory"`
	MuscleMassHistory []MassPoint    `json:"muscleMassHistory"`
	RecentWorkouts    RecentWorkouts `json:"recentWorkouts"`
}

// Profile holds the fields collected at sign-up.
type Profile struct {
	Name   string
	Age    int
	Weight float64
	Height float64
}

// Validate checks that every sign-up field is filled in.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive")
	}
	if p.Weight <= 0 {
		return fmt.Errorf("weight must be positive")
	}
	if p.Height <= 0 {
		return fmt.Errorf("height must be positive")
	}
	return nil
}

// NewUser creates a fresh profile with zeroed stats and one weight point for today.
func NewUser(p Profile, today Date) *User {
	name := strings.TrimSpace(p.Name)
	return &User{
		Name:              name,
		Age:               p.Age,
		Weight:            p.Weight,
		Height:            p.Height,
		AvatarURL:         AvatarURL(name),
		WorkoutStreak:     0,
		MuscleMass:        0,
		WeightHistory:     []WeightPoint{{Date: today, Weight: p.Weight}},
		MuscleMassHistory: []MassPoint{},
		RecentWorkouts:    RecentWorkouts{Today: []SimpleWorkout{}, Yesterday: []SimpleWorkout{}},
	}
}

// AvatarURL returns the generated avatar for a name, labelled with its first two characters.
func AvatarURL(name string) string {
	initials := []rune(name)
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return fmt.Sprintf("https://avatar.vercel.sh/%s.svg?text=%s",
		url.PathEscape(name), url.QueryEscape(string(initials)))
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.WeightHistory = cloneSlice(u.WeightHistory)
	out.MuscleMassHistory = cloneSlice(u.MuscleMassHistory)
	out.RecentWorkouts = RecentWorkouts{
		Today:     cloneSlice(u.RecentWorkouts.Today),
		Yesterday: cloneSlice(u.RecentWorkouts.Yesterday),
	}
	return &out
}

// cloneSlice copies s, keeping nil and empty distinct so JSON output is stable.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// UserPatch describes a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name              *string
	Age               *int
	Weight            *float64
	Height            *float64
	AvatarURL         *string
	WorkoutStreak     *int
	MuscleMass        *float64
	WeightHistory     []WeightPoint
	MuscleMassHistory []MassPoint
	RecentWorkouts    *RecentWorkouts
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Weight == nil && p.Height == nil &&
		p.AvatarURL == nil && p.WorkoutStreak == nil && p.MuscleMass == nil &&
		p.WeightHistory == nil && p.MuscleMassHistory == nil && p.RecentWorkouts == nil
}

// Apply merges the patch into u in place.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Weight != nil {
		u.Weight = *p.Weight
	}
	if p.Height != nil {
		u.Height = *p.Height
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.WorkoutStreak != nil {
		u.WorkoutStreak = *p.WorkoutStreak
	}
	if p.MuscleMass != nil {
		u.MuscleMass = *p.MuscleMass
	}
	if p.WeightHistory != nil {
		u.WeightHistory = cloneSlice(p.WeightHistory)
	}
	if p.MuscleMassHistory != nil {
		u.MuscleMassHistory = cloneSlice(p.MuscleMassHistory)
	}
	if p.RecentWorkouts != nil {
		u.RecentWorkouts = *p.RecentWorkouts
	}
}
