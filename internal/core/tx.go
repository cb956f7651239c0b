package core

// Transaction is a single account transaction as reported by the explorer.
// Numeric fields are kept as decimal strings, they may not fit into 64 bits.
type Transaction struct {
	Hash        string `json:"hash"`
	BlockNumber string `json:"blockNumber"`
	From        string `json:"from"`
	To          string `json:"to"`
	GasUsed     string `json:"gasUsed"`
	GasPrice    string `json:"gasPrice"`
	IsError     string `json:"isError"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TransactionPageReq selects one page of account transactions.
type TransactionPageReq struct {
	Address  string
	Page     int // starts from 1
	PageSize int
	Sort     SortOrder
}
