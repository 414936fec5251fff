// Package policy centralizes per-user data isolation. Every read or write of
// an owned resource goes through OwnedBy so no query can forget the user_id
// predicate.
package policy

import "gorm.io/gorm"

// Ownable is an interface for resources that have an owner.
// Implement this on your models to enable ownership-based authorization.
type Ownable interface {
	GetUserID() uint
}

// OwnedBy is a gorm scope restricting a query to rows owned by the given
// user. Usage: db.Scopes(policy.OwnedBy(uid)).Find(&invoices).
func OwnedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Owns reports whether the resource belongs to the user. Callers surface a
// miss as not-found, never forbidden, so the existence of other users'
// resources is not revealed.
func Owns(r Ownable, userID uint) bool {
	return r != nil && r.GetUserID() == userID
}
