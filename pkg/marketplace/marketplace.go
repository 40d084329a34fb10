package marketplace

import "strings"

// Tag identifies which known marketplace contract a transfer routed through.
type Tag string

const (
	OpenSeaV1    Tag = "OpenSeaV1"
	OpenSeaV2    Tag = "OpenSeaV2"
	SeaPort      Tag = "SeaPort"
	LooksRare    Tag = "LooksRare"
	OxProtocol   Tag = "OxProtocol"
	OxProtocolV2 Tag = "OxProtocolV2"
	Blur         Tag = "Blur"
	Rarible      Tag = "Rarible"
	X2Y2         Tag = "X2Y2"
	NFTX         Tag = "NFTX"
	GenieSwap    Tag = "GenieSwap"
	CryptoCoven  Tag = "CryptoCoven"
	Unknown      Tag = "Unknown"
)

// ZeroAddress signals a mint or burn when it appears as a transfer endpoint.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// String returns the canonical display label stored on entities.
func (t Tag) String() string {
	if t == "" {
		return string(Unknown)
	}
	return string(t)
}

// Entry binds one tag to its known router addresses. Some marketplaces have
// deployed more than one router; all addresses must be checked.
type Entry struct {
	Tag       Tag
	Addresses []string
}

// AddressBook is the priority-ordered table of known marketplace contracts.
// Classification walks the entries in order and the first address match wins,
// so the order must stay deterministic and total.
type AddressBook struct {
	entries []Entry
}

// New builds an AddressBook from ordered entries, lowercasing every address.
func New(entries []Entry) AddressBook {
	normalized := make([]Entry, 0, len(entries))
	for _, e := range entries {
		addrs := make([]string, 0, len(e.Addresses))
		for _, a := range e.Addresses {
			if a == "" {
				continue
			}
			addrs = append(addrs, strings.ToLower(a))
		}
		normalized = append(normalized, Entry{Tag: e.Tag, Addresses: addrs})
	}
	return AddressBook{entries: normalized}
}

// Default returns the Ethereum mainnet router table.
func Default() AddressBook {
	return New([]Entry{
		{OpenSeaV1, []string{"0x7be8076f4ea4a4ad08075c2508e481d6c946d12b"}},
		{OpenSeaV2, []string{"0x7f268357a8c2552623316e2562d90e642bb538e5"}},
		{SeaPort, []string{"0x00000000006c3852cbef3e08e8df289169ede581"}},
		{LooksRare, []string{"0x59728544b08ab483533076417fbbb2fd0b17ce3a"}},
		{OxProtocol, []string{"0x080bf510fcbf18b91105470639e9561022937712"}},
		{OxProtocolV2, []string{"0x61935cbdd02287b511119ddb11aeb42f1593b7ef"}},
		{Blur, []string{
			"0x000000000000ad05ccc4f10045630fb830b95127",
			"0x39da41747a83aee658334415666f3ef92dd0d541",
		}},
		{Rarible, []string{"0x9757f2d2b135150bbeb65308d4a91804107cd8d6"}},
		{X2Y2, []string{"0x74312363e45dcaba76c59ec49a7aa8a65a67eed3"}},
		{NFTX, []string{"0x0fc584529a2aefa997697fafacba5831fac0c22d"}},
		{GenieSwap, []string{"0x0a267cf51ef038fc00e71801f5a524aec06e4f07"}},
		{CryptoCoven, []string{"0x5180db8f5c931aae63c74266b211f580155ecac8"}},
	})
}

// Entries exposes the ordered table, mainly for config dumps and tests.
func (b AddressBook) Entries() []Entry {
	return b.entries
}

// Classify maps the transaction-level counterparties to a marketplace tag.
// txTo and txFrom are the enclosing transaction's to/from addresses, not the
// NFT transfer endpoints. An empty candidate or no match yields Unknown.
//
// Known limitation: trades routed through a smart-contract wallet or an
// aggregator carry the router's address at the transaction level, so they
// classify as Unknown or as the aggregator. That is accepted behavior.
func (b AddressBook) Classify(txTo, txFrom string) Tag {
	if txTo == "" || txFrom == "" {
		return Unknown
	}
	to := strings.ToLower(txTo)
	from := strings.ToLower(txFrom)
	for _, e := range b.entries {
		for _, addr := range e.Addresses {
			if addr == to || addr == from {
				return e.Tag
			}
		}
	}
	return Unknown
}

// All returns the closed tag set, Unknown last.
func All() []Tag {
	return []Tag{
		OpenSeaV1, OpenSeaV2, SeaPort, LooksRare, OxProtocol, OxProtocolV2,
		Blur, Rarible, X2Y2, NFTX, GenieSwap, CryptoCoven, Unknown,
	}
}

// Valid reports whether s is one of the closed tag labels.
func Valid(s string) bool {
	for _, t := range All() {
		if string(t) == s {
			return true
		}
	}
	return false
}
