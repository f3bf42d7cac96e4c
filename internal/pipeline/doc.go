// Package pipeline contains the HTML-to-Markdown conversion stages.
//
// Each stage is a small interface with a single method taking a
// context.Context, so the orchestrator in the root package can compose
// them and tests can substitute fakes:
//
//   - Fetcher resolves a URL into document bytes.
//   - DecodeToUTF8 resolves the character encoding of fetched bytes.
//   - Sanitizer strips dangerous markup before parsing.
//   - Engine parses sanitized HTML into a Document.
//   - ImageRelocator uploads embedded images and builds the link map.
//   - Renderer assembles the final Markdown from the Document and link map.
package pipeline
