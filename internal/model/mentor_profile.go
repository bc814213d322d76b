package model

import "time"

// MentorProfile holds the public-facing information a mentor exposes in
// the directory together with their hourly rate.  A profile row is
// created when a user registers with the MENTOR role and stays hidden
// from browsing until an admin approves it.
//
// Fields:
//  UserID          – primary key, references users.id.
//  DisplayName     – name shown in the mentor directory.
//  Headline        – short tagline shown in listings.
//  Bio             – free-form profile text.
//  Expertise       – comma separated topic tags used for filtering.
//  HourlyRateCents – price per hour in cents.
//  Timezone        – IANA timezone name the mentor schedules in.
//  IsApproved      – set by an admin; unapproved mentors are not bookable.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type MentorProfile struct {
	UserID          uint64    // mentor_profiles.user_id
	DisplayName     string    // mentor_profiles.display_name
	Headline        string    // mentor_profiles.headline
	Bio             string    // mentor_profiles.bio
	Expertise       string    // mentor_profiles.expertise
	HourlyRateCents uint32    // mentor_profiles.hourly_rate_cents
	Timezone        string    // mentor_profiles.timezone
	IsApproved      bool      // mentor_profiles.is_approved
	CreatedAt       time.Time // mentor_profiles.created_at
	UpdatedAt       time.Time // mentor_profiles.updated_at
}
