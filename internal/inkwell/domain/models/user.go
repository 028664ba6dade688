package models

import "time"

// Permission is one capability bit of a role's permission mask.
type Permission int

const (
	PermFollow           Permission = 0x01
	PermComment          Permission = 0x02
	PermWriteArticles    Permission = 0x04
	PermModerateComments Permission = 0x08
	PermAdminister       Permission = 0x80
)

type Role struct {
	ID          int64  `json:"role_id"`
	Name        string `json:"name"`
	Permissions int    `json:"permissions"`
	Default     bool   `json:"default"`
}

type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Confirmed    bool      `json:"confirmed"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	AboutMe      string    `json:"about_me"`
	MemberSince  time.Time `json:"member_since"`
	LastSeen     time.Time `json:"last_seen"`
}

// Can reports whether the user's role carries every bit of p.
// A nil user (anonymous request) holds no capability at all.
func (u *User) Can(p Permission) bool {
	if u == nil {
		return false
	}

	return Permission(u.Role.Permissions)&p == p
}

func (u *User) IsAdministrator() bool {
	return u.Can(PermAdminister)
}

// FollowEdge is a directed follower -> followed relationship
// decorated with the peer user for listing pages.
type FollowEdge struct {
	Peer      User      `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}
