package directory

import "github.com/dmitrijs2005/rbacdash/internal/models"

// SeedUsers returns a fresh copy of the demo accounts the directory starts
// with on every process start.
func SeedUsers() []models.User {
	return []models.User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Password: "admin123", RoleID: 1, IsActive: true},
		{ID: "2", Name: "Moderator", Email: "mod1@example.com", Password: "mod123", RoleID: 2, IsActive: true},
		{ID: "3", Name: "Regular User", Email: "user1@example.com", Password: "user123", RoleID: 3, IsActive: true},
	}
}

// SeedRoles returns the fixed role set.
func SeedRoles() []models.Role {
	return []models.Role{
		{ID: 1, Name: "Admin"},
		{ID: 2, Name: "Moderator"},
		{ID: 3, Name: "User"},
	}
}
