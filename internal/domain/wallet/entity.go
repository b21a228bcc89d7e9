package wallet

// User represents a wallet holder in the system.
type User struct {
	ID         int64   // ID is the unique identifier for the user
	Username   string  // Username is the unique login name of the user
	CoinAmount float64 // CoinAmount is the quantity of coin held by the user
	IsAdmin    bool    // IsAdmin marks administrative accounts
}

// SeedUsers returns the records inserted into an empty store on startup.
func SeedUsers() []User {
	return []User{
		{Username: "Alessandro", CoinAmount: 0.001, IsAdmin: false},
		{Username: "Andrea", CoinAmount: 0.001, IsAdmin: false},
		{Username: "Admin", CoinAmount: 0.0045, IsAdmin: true},
	}
}
