// Package maya provides the backend for the Maya AI chat assistant.
// It offers account management, per-user settings, natural language
// reminders, and a real-time web-search-augmented response pipeline
// that searches, scrapes, and summarizes current information before
// handing it to the language model.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// gemini/, brevo/).
package maya
