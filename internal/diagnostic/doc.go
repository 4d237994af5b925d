// Package diagnostic provides structured errors, warnings and notes
// produced while loading manifests and resolving generation requests.
//
// Key capabilities:
//   - Stable diagnostic codes (e.g. "unknown_base_type", "unresolved_attribute")
//   - Type / member / manifest file attribution
//   - Merging diagnostics from several manifest files
package diagnostic
