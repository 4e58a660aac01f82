package model

// Event names emitted by the pool manager.
const (
	EventTokenRegistered = "TokenRegistered"
	EventPairCreated     = "PairCreated"
	EventSwap            = "Swap"
)

// TokenRegisteredData is the payload of a TokenRegistered event.
type TokenRegisteredData struct {
	Asset string `json:"asset"`
}

// PairCreatedData is the payload of a PairCreated event.
type PairCreatedData struct {
	AssetLow  string `json:"asset_low"`
	AssetHigh string `json:"asset_high"`
}

// SwapData is the payload of a Swap event. Amounts are decimal strings.
type SwapData struct {
	Sender    string `json:"sender"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
}

// EventRecord is the journaled envelope around an event payload.
type EventRecord struct {
	Seq       uint64      `json:"seq"`
	EventName string      `json:"event_name"`
	EmittedAt string      `json:"emitted_at"`
	Decoded   interface{} `json:"decoded"`
}
