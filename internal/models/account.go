package models

// Account is a registered user. Email is the unique key of the account list.
type Account struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// AccountView is the public shape of an account
type AccountView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// View strips the credentials from the account
func (a Account) View() AccountView {
	return AccountView{Name: a.Name, Email: a.Email}
}
