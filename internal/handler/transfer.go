package handler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/covenscan/nft-indexer/pkg/entity"
	"github.com/covenscan/nft-indexer/pkg/events"
	"github.com/covenscan/nft-indexer/pkg/marketplace"
	"github.com/covenscan/nft-indexer/pkg/store/accountstore"
	"github.com/covenscan/nft-indexer/pkg/store/interactionstore"
	"github.com/covenscan/nft-indexer/pkg/store/transferstore"
)

// Handler applies one transfer event to the derived records: account
// counters, the immutable Transfer row, and per-(account, marketplace)
// interaction aggregates. Events are handled strictly one at a time, in
// delivery order; counter updates are not re-delivery safe, exactly-once is
// the transport's job.
type Handler struct {
	accounts     accountstore.Store
	transfers    transferstore.Store
	interactions interactionstore.Store
	book         marketplace.AddressBook
	log          *slog.Logger
}

func New(
	accounts accountstore.Store,
	transfers transferstore.Store,
	interactions interactionstore.Store,
	book marketplace.AddressBook,
	log *slog.Logger,
) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		accounts:     accounts,
		transfers:    transfers,
		interactions: interactions,
		book:         book,
		log:          log,
	}
}

// Handle runs the full effect of one event. Reads happen up front, account
// and transfer writes at the tail; interaction rows are written as they are
// resolved so a self-transfer sees its own first-endpoint write.
func (h *Handler) Handle(evt events.TransferEvent) error {
	fromID := strings.ToLower(evt.From)
	toID := strings.ToLower(evt.To)
	if fromID == "" || toID == "" {
		return fmt.Errorf("malformed event %s: missing transfer endpoint", evt.TransferID())
	}

	mintOrBurn := entity.IsZeroAddress(fromID) || entity.IsZeroAddress(toID)
	tag := h.book.Classify(evt.TxTo, evt.TxFrom)

	sender, err := h.loadOrNewAccount(fromID)
	if err != nil {
		return err
	}
	recipient := sender
	if toID != fromID {
		recipient, err = h.loadOrNewAccount(toID)
		if err != nil {
			return err
		}
	}

	sender.TxHash = evt.TxHash
	recipient.TxHash = evt.TxHash
	sender.SendCount++
	recipient.ReceiveCount++
	recipient.TotalSpent = recipient.TotalSpent.Add(evt.TxValue)

	// Mints and burns move no holdings between real owners. NFTCount is
	// deliberately not floor-clamped; a sender unseen before this event goes
	// negative and stays that way.
	if !mintOrBurn {
		sender.NFTCount--
		recipient.NFTCount++
	}

	transfer := &entity.Transfer{
		ID:          evt.TransferID().String(),
		From:        fromID,
		To:          toID,
		TokenID:     evt.TokenID,
		Marketplace: tag.String(),
		Value:       evt.TxValue,
		LogIndex:    evt.LogIndex,
		TxHash:      evt.TxHash,
	}

	h.emitDiagnostics(evt, tag)

	if !mintOrBurn {
		if err := h.touchInteraction(sender, tag); err != nil {
			return err
		}
		if err := h.touchInteraction(recipient, tag); err != nil {
			return err
		}
	} else {
		h.log.Info("mint or burn transfer, skipping marketplace interactions",
			"tx_hash", evt.TxHash, "token_id", evt.TokenID)
	}

	if err := h.accounts.Save(sender); err != nil {
		return fmt.Errorf("save sender %s: %w", sender.ID, err)
	}
	if recipient != sender {
		if err := h.accounts.Save(recipient); err != nil {
			return fmt.Errorf("save recipient %s: %w", recipient.ID, err)
		}
	}

	// Mint/burn transfers leave no Transfer row: the event is recorded only
	// as account counter movement.
	if !mintOrBurn {
		if err := h.transfers.Save(transfer); err != nil {
			return fmt.Errorf("save transfer %s: %w", transfer.ID, err)
		}
	}

	return nil
}

func (h *Handler) loadOrNewAccount(id string) (*entity.Account, error) {
	account, found, err := h.accounts.Get(id)
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", id, err)
	}
	if !found {
		account = entity.NewAccount(id)
	}
	return account, nil
}

// touchInteraction resolves the (account, tag) aggregate, creating it on the
// first interaction. Only creation bumps the account's distinct-marketplace
// counter, so the counter always equals the number of interaction rows the
// account owns.
func (h *Handler) touchInteraction(account *entity.Account, tag marketplace.Tag) error {
	id := entity.InteractionID{Account: account.ID, Tag: tag}
	interaction, found, err := h.interactions.Get(id)
	if err != nil {
		return fmt.Errorf("load interaction %s: %w", id, err)
	}
	if !found {
		interaction = entity.NewMarketplaceInteraction(id)
		account.UniqueMarketplacesCount++
	}
	interaction.TransactionCount++

	if err := h.interactions.Save(interaction); err != nil {
		return fmt.Errorf("save interaction %s: %w", id, err)
	}
	return nil
}

func (h *Handler) emitDiagnostics(evt events.TransferEvent, tag marketplace.Tag) {
	if tag == marketplace.Unknown {
		h.log.Info("transfer not matched to a known marketplace",
			"tx_hash", evt.TxHash, "tx_to", evt.TxTo, "tx_from", evt.TxFrom)
	}
	if strings.EqualFold(evt.TxTo, marketplace.ZeroAddress) {
		h.log.Warn("transaction sent to the zero address, possible burn",
			"tx_hash", evt.TxHash)
	}
	if evt.TxTo == "" || evt.TxFrom == "" {
		h.log.Warn("unusual activity: transaction missing a counterparty address",
			"tx_hash", evt.TxHash, "tx_to", evt.TxTo, "tx_from", evt.TxFrom)
	}
}
