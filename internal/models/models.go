// Package models holds the persisted entities. Entities reference each other
// by id only; repositories resolve the references.
package models

// All returns every entity in migration order.
func All() []any {
	return []any{
		&User{},
		&Recipe{},
		&Comment{},
		&Like{},
		&Favorite{},
		&Notification{},
	}
}
