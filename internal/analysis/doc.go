// Package analysis defines the document analysis provider boundary.
//
// Three variants exist behind one interface: Disabled (fixed degraded
// results), DeepSeek (remote chat-completions API), and Ollama (local LLM
// endpoint). The variant is selected by configuration, and callers at the
// daemon boundary convert provider errors into visible placeholder strings
// rather than failing the request.
package analysis
