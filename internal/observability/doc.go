// Package observability provides an append-only JSONL audit log of tool
// invocations. Each calculator call handled by the MCP server is
// recorded with its outcome so operators can inspect usage after the
// fact without the engine itself keeping any state.
package observability
