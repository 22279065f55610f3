package domain

import "time"

// Address is the user's single shipping address. All fields are required
// at registration so downstream snapshots are never partial.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	Address      Address
	CreatedAt    time.Time
}
