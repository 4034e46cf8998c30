// Package generation provides the provider abstraction for text generation:
// a uniform Provider interface over heterogeneous backends (OpenAI,
// Anthropic, Gemini), and a Gateway that snapshots the active primary and
// fallback provider profiles, performs single-retry failover between them,
// and converts normalized token usage into monetary cost.
package generation
