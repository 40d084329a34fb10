package entity

import (
	"github.com/shopspring/decimal"

	"github.com/covenscan/nft-indexer/pkg/marketplace"
)

// Account is the per-address aggregate. Created on first appearance as a
// transfer endpoint, never deleted, mutated on every event that references it.
type Account struct {
	ID                      string          `json:"id"`
	SendCount               uint64          `json:"send_count"`
	ReceiveCount            uint64          `json:"receive_count"`
	TotalSpent              decimal.Decimal `json:"total_spent"`
	NFTCount                int64           `json:"nft_count"`
	UniqueMarketplacesCount uint64          `json:"unique_marketplaces_count"`
	TxHash                  string          `json:"tx_hash"`
}

func NewAccount(id string) *Account {
	return &Account{ID: id, TotalSpent: decimal.Zero}
}

// Transfer is one indexed NFT transfer, immutable once created. Its id is the
// (tx hash, log index) pair, which makes duplicate delivery of the same log
// resolve to the same record.
type Transfer struct {
	ID          string          `json:"id"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	TokenID     uint64          `json:"token_id"`
	Marketplace string          `json:"marketplace"`
	Value       decimal.Decimal `json:"value"`
	LogIndex    uint64          `json:"log_index"`
	TxHash      string          `json:"tx_hash"`
}

// MarketplaceInteraction counts trades between one account and one
// marketplace. Created on first interaction, incremented after, never deleted.
type MarketplaceInteraction struct {
	ID               string `json:"id"`
	Account          string `json:"account"`
	Marketplace      string `json:"marketplace"`
	TransactionCount uint64 `json:"transaction_count"`
}

func NewMarketplaceInteraction(id InteractionID) *MarketplaceInteraction {
	return &MarketplaceInteraction{
		ID:               id.String(),
		Account:          id.Account,
		Marketplace:      id.Tag.String(),
		TransactionCount: 0,
	}
}

// IsZeroAddress reports whether addr is the mint/burn sentinel.
func IsZeroAddress(addr string) bool {
	return addr == marketplace.ZeroAddress
}
