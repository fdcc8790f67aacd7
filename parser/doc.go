// Package parser locates and decodes JSON payloads inside raw LLM output.
//
// Model responses arrive in three encodings: bare JSON, a fenced code block
// (labeled or not), or JSON embedded in surrounding prose. Extraction uses a
// balanced-delimiter scan that is string- and escape-aware, so braces inside
// string values never truncate the match. When no JSON object or array can
// be located the failure is engine.ErrNoJSONFound, kept distinct from schema
// errors raised downstream.
package parser
