// Package mention keeps a raw edit text, an ordered list of resolved mentions,
// and a rendered view of that text in step with each other.
//
// Every resolved mention is stored in the raw text as a single sentinel rune.
// The i-th entry of the mention list always belongs to the i-th sentinel,
// counting left to right. Engine is the stateful entry point; DetectCandidate,
// Resolve, Render and Export are the pure building blocks it is made of.
package mention
