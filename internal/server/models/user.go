package models

type User struct {
	ID       string
	UserName string
	Salt     []byte
	Verifier []byte
}
