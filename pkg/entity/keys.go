package entity

import (
	"strconv"

	"github.com/covenscan/nft-indexer/pkg/marketplace"
)

// Composite keys are value types compared by field, rendered to deterministic
// strings only at the storage boundary. Neither a tx hash nor a hex address
// contains the separator, so the renderings cannot collide.

// TransferID identifies one transfer by its enclosing transaction hash and
// the log index within that transaction.
type TransferID struct {
	TxHash   string
	LogIndex uint64
}

func (id TransferID) String() string {
	return id.TxHash + "-" + strconv.FormatUint(id.LogIndex, 10)
}

// InteractionID identifies the (account, marketplace) interaction aggregate.
type InteractionID struct {
	Account string
	Tag     marketplace.Tag
}

func (id InteractionID) String() string {
	return id.Account + "-" + id.Tag.String()
}
