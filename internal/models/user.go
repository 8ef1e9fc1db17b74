// Package models contains data structures for the application's domain models.
package models

// User represents a member of the public space.
//
// Users are created by fixtures or the profile editor and are never deleted.
// FriendCount drives the daily posting quota tiers.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	FriendCount int    `json:"friends"`
}

// Profile holds the editable profile fields stored separately from the user
// record, mirroring the original client's profile blob.
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
