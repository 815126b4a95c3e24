package entity

// AgentUsage aggregates a single speaker's footprint across all stored
// transcripts. Token counts and costs are local estimates, not provider
// billing data.
type AgentUsage struct {
	Name            string  `json:"ai"`
	Messages        int     `json:"messages"`
	EstimatedTokens int64   `json:"estimated_tokens"`
	EstimatedCost   float64 `json:"estimated_cost_usd"`
}

// UsageReport is the store-wide usage aggregation.
type UsageReport struct {
	Conversations int          `json:"conversations"`
	TotalMessages int          `json:"total_messages"`
	Agents        []AgentUsage `json:"agents"`
}
