// Package pipeline implements the multi-stage generation session: the
// context accumulator that threads bounded conversational context between
// provider calls, the output parser that recovers typed pros/cons records
// from free text, the orchestrator state machine that sequences the stages
// per content type, and the renderer that assembles the final document.
package pipeline
