package userrepo

import "errors"

var (
	ErrNotFound         = errors.New("user not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrAlreadyExists    = errors.New("user already exists")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)
