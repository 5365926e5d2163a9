package model

// User is one row of the credential file. PasswordHash is the bcrypt
// hash stored in the file's Password column.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
