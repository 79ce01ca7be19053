package domain

type Profile struct {
	ID      AccountID
	Email   string
	Name    string
	Phone   string
	Address string
	City    string
	Country string
}
