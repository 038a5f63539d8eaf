package constants

const (
	MaxNameLen    = 100
	MaxAddressLen = 200
	MaxParties    = 10

	// Date Layout
	DateFormat = "2006-01-02"
)
