package wallet

// User represents a user DTO enriched with its fiat value.
type User struct {
	Username   string
	CoinAmount float64
	USDValue   float64
	IsAdmin    bool
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// WalletInfoResponse aggregates the holdings of every stored user.
// Price is nil when the oracle could not provide one.
type WalletInfoResponse struct {
	TotalAmount   float64
	Price         *float64
	TotalUSDValue float64
}

// StatusResponse describes service health.
// DatabaseStatus is "connected" or "error: <message>".
type StatusResponse struct {
	DatabaseStatus string
}

// DatabaseConnected is the DatabaseStatus reported when the store answers a ping.
const DatabaseConnected = "connected"
