package models

// Issuance records that a signed form was handed to a client. The canonical
// query itself is never stored; it can carry customer data.
type Issuance struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	Action      string `json:"action"`
	Subdomain   string `json:"subdomain"`
	Environment string `json:"environment"`
	Signature   string `json:"signature"`
	CreatedAt   int64  `json:"created_at"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}
