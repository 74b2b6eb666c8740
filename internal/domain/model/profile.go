package model

// FederatedProfile carries identity data obtained from the external provider.
type FederatedProfile struct {
	SubjectID string
	Email     string
	Name      string
	Picture   string
}
