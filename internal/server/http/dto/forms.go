package dto

// CredentialsForm carries the login/registration form fields.
type CredentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// DepositForm carries the /addMoney form fields.
type DepositForm struct {
	Amount float64 `form:"moneyAdd"`
}

// TransferForm carries the /sendMoney form fields. AccountNumber addresses
// the recipient by account number or provider subject id.
type TransferForm struct {
	AccountNumber string  `form:"accNumber"`
	Amount        float64 `form:"moneySend"`
}
