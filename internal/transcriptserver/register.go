// Package transcriptserver registers the transcript MCP tools:
// get_transcript, search_transcript, list_transcript_languages,
// transcript_summary. Handlers stay thin; parsing, analytics, and
// retrieval live in internal/engine.
package transcriptserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all transcript tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerGetTranscript(server)
	registerSearchTranscript(server)
	registerListLanguages(server)
	registerTranscriptSummary(server)
}
