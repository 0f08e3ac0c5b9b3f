package models

import "time"

// Profile is the site owner's public profile. A single row exists at most;
// the repository enforces the singleton on write.
type Profile struct {
	ID                 int64     `db:"id" json:"-"`
	Name               string    `db:"name" json:"name"`
	Title              string    `db:"title" json:"title"`
	Bio                string    `db:"bio" json:"bio"`
	ContactDescription string    `db:"contact_description" json:"contactDescription"`
	Email              string    `db:"email" json:"email"`
	Phone              string    `db:"phone" json:"phone"`
	Location           string    `db:"location" json:"location"`
	Website            string    `db:"website" json:"website"`
	GitHub             string    `db:"github" json:"github"`
	LinkedIn           string    `db:"linkedin" json:"linkedin"`
	Twitter            string    `db:"twitter" json:"twitter"`
	Instagram          string    `db:"instagram" json:"instagram"`
	ProfileImage       string    `db:"profile_image" json:"profileImage"`
	Resume             string    `db:"resume" json:"resume"`
	IsPublic           bool      `db:"is_public" json:"isPublic"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}
