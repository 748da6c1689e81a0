package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ChatResponse struct {
	Text     string        `json:"text"`
	Products []CatalogItem `json:"products"`
	Provider string        `json:"provider,omitempty"`
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Database  string          `json:"database"`
	Providers map[string]bool `json:"providers"`
}
