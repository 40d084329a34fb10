package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/covenscan/nft-indexer/pkg/marketplace"
)

func TestTransferID_Deterministic(t *testing.T) {
	a := TransferID{TxHash: "0xabc", LogIndex: 7}
	b := TransferID{TxHash: "0xabc", LogIndex: 7}

	// Identical inputs resolve to the same identifier, both by value and by
	// rendered string.
	assert.Equal(t, a, b)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "0xabc-7", a.String())
}

func TestTransferID_DistinctLogs(t *testing.T) {
	a := TransferID{TxHash: "0xabc", LogIndex: 1}
	b := TransferID{TxHash: "0xabc", LogIndex: 2}
	assert.NotEqual(t, a.String(), b.String())
}

func TestInteractionID_Rendering(t *testing.T) {
	id := InteractionID{Account: "0xaaa", Tag: marketplace.SeaPort}
	assert.Equal(t, "0xaaa-SeaPort", id.String())

	same := InteractionID{Account: "0xaaa", Tag: marketplace.SeaPort}
	assert.Equal(t, id, same)
}

func TestIsZeroAddress(t *testing.T) {
	assert.True(t, IsZeroAddress("0x0000000000000000000000000000000000000000"))
	assert.False(t, IsZeroAddress("0x0000000000000000000000000000000000000001"))
	assert.False(t, IsZeroAddress(""))
}
