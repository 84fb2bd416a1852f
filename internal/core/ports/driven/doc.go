// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Converter: Renders a parsed document as Markdown, text or a link list
//   - PageFetcher: Retrieves page HTML (direct HTTP or headless browser)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ImageRenderer: Screenshots HTML. Without it, image tools are disabled.
//   - MarkdownRenderer: Wraps Markdown in a styled page for ImageRenderer.
//   - ConfigWatcher: Live configuration reload.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or converter package
package driven
