package mesh

import "encoding/json"

// PeerSnapshot maps a peer id to its opaque metadata as reported by the
// backend gateway. Metadata is forwarded unchanged; there is no identity
// across snapshots, a peer missing from the next snapshot is simply gone.
type PeerSnapshot map[string]json.RawMessage

// MessageList is the full known message set at poll time, in backend order.
// There is no id, timestamp or sender at this layer.
type MessageList []string

// Outbound is a user-authored message on its way to the backend.
type Outbound struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message kinds accepted by the gateway. Type is free-form on the wire,
// these are just the ones the clients emit.
const (
	KindChat = "CHAT"
	KindSOS  = "SOS"
)

// Envelope is the wire form a gateway wraps an outbound message into
// before distributing it to the mesh.
type Envelope struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Sender    string  `json:"sender"`
	Timestamp float64 `json:"timestamp"`
	Payload   Payload `json:"payload"`
}

// Payload carries the message body inside an Envelope.
type Payload struct {
	Text string `json:"text"`
}
