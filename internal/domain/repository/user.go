package repository

// User representa un usuario registrado.
// HashedPassword es un PHC string; nunca se serializa hacia afuera.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
}

func (u User) Key() int64 { return u.ID }

func (u User) Clone() User { return u }
