// Command commitguard scans recent git history for hardcoded credentials.
//
// Usage:
//
//	commitguard --repo ./service -n 10 --out report.json
//	commitguard --repo https://github.com/acme/app.git --min-confidence high
//
// Matches of low or medium confidence are sent to an LLM classifier in a
// single request; pass --no-llm to skip that step.
package main
