package types

import "encoding/json"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketChat       = "chat"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

// Message represents a single turn in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProviderInput is the uniform input every response provider receives.
// ProductContext, when set, is the product page the user is currently
// viewing and questions must be answered about that product.
type ProviderInput struct {
	Message        string
	History        []Message
	ProductContext *CatalogItem
}

// ProviderResponse is the uniform shape every provider path returns:
// the answer text plus any product suggestions. Products is nil when no
// product search ran for the turn.
type ProviderResponse struct {
	Text     string        `json:"text"`
	Products []CatalogItem `json:"products"`
}

type WebsocketRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WebSocketChatPayload struct {
	Message        string       `json:"message"`
	History        []Message    `json:"history"`
	ProductContext *CatalogItem `json:"product_context,omitempty"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
