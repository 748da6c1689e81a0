package types

// ChatRequest is the chat endpoint payload. History is the prior turns of
// the conversation as kept by the client; the server is stateless across
// calls except for the knowledge cache.
type ChatRequest struct {
	Message        string       `json:"message"`
	History        []Message    `json:"history,omitempty"`
	ProductContext *CatalogItem `json:"product_context,omitempty"`
}
