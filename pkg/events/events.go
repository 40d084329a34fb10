package events

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/covenscan/nft-indexer/pkg/entity"
)

// TransferEvent is the inbound notification for one NFT transfer log.
// From/To/TokenID describe the NFT movement; TxHash, TxValue, TxFrom and TxTo
// describe the enclosing transaction. Events arrive in blockchain order
// (block height, then transaction index, then log index).
type TransferEvent struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	TokenID     uint64          `json:"token_id"`
	TxHash      string          `json:"tx_hash"`
	TxValue     decimal.Decimal `json:"tx_value"`
	TxFrom      string          `json:"tx_from"`
	TxTo        string          `json:"tx_to"`
	LogIndex    uint64          `json:"log_index"`
	BlockNumber uint64          `json:"block_number"`
}

func (e TransferEvent) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *TransferEvent) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}

// TransferID returns the compound key identifying this event's transfer.
func (e TransferEvent) TransferID() entity.TransferID {
	return entity.TransferID{TxHash: e.TxHash, LogIndex: e.LogIndex}
}

// IdempotentKey is the deduplication key handed to the message queue. Two
// deliveries of the same log carry the same key.
func (e TransferEvent) IdempotentKey() string {
	return e.TransferID().String()
}

func (e TransferEvent) String() string {
	return fmt.Sprintf(
		"{TxHash: %s, LogIndex: %d, Block: %d, From: %s, To: %s, TokenID: %d, Value: %s}",
		e.TxHash, e.LogIndex, e.BlockNumber, e.From, e.To, e.TokenID, e.TxValue,
	)
}
