// Package llm provides language-model access for the Archforge SDK.
//
// The package defines the conversation types (Message, Role), the
// completion request/response contract, and two Client implementations:
// HTTPClient speaks the OpenAI-compatible chat-completions protocol, and
// MockClient serves canned responses for tests and offline development.
//
// Every completion is a single awaited call: one outbound request, one
// response or error. Cancellation is supported through the context
// passed to Complete.
package llm
