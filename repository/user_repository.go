package repository

import "EchoFM/model"

// UserRepository defines the interface for user data operations.
//
// Lookups return (nil, nil) when no record exists; not-found is a result,
// not an error. The store performs no validation: username uniqueness is
// enforced by callers checking GetUserByUsername before CreateUser.
type UserRepository interface {
	CreateUser(user *model.InsertUser) (*model.User, error)
	GetUserByID(id int64) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
}
