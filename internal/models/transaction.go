package models

// Sidebar choices offered by the dashboard.
var (
	Countries = []string{"India", "USA", "UK", "Germany"}
	Channels  = []string{"Online", "Swipe"}
	CardTypes = []string{"Debit", "Credit"}
)

// Features maps a model feature name (Time, Amount, V1..V28) to its value.
type Features map[string]float64

// TransactionInput is what an operator enters in the dashboard sidebar.
type TransactionInput struct {
	Amount        float64 `json:"amount"`
	Country       string  `json:"country"`
	Channel       string  `json:"channel"`
	International bool    `json:"international"`
	CardType      string  `json:"card_type"`
}

// Transaction is a simulated card transaction ready to be scored.
type Transaction struct {
	ID string `json:"id"`
	TransactionInput
	Features Features `json:"features"`
}

// Payload renders the body sent to the scoring API. The sidebar fields
// travel along as passthrough values the scorer ignores.
func (t *Transaction) Payload() map[string]interface{} {
	body := make(map[string]interface{}, len(t.Features)+4)
	for name, v := range t.Features {
		body[name] = v
	}
	body["country"] = t.Country
	body["channel"] = t.Channel
	body["international"] = t.International
	body["card_type"] = t.CardType
	return body
}
