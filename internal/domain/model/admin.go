package model

// RoleAdmin is the store role allowed into the dashboard.
const RoleAdmin = "admin"

// Admin describes a store user as returned by the store profile endpoint.
type Admin struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Principal is an authenticated dashboard session.
type Principal struct {
	AdminID    string
	StoreToken string
}
