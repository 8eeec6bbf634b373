// Package tldr resolves command names to tldr pages hosted in the
// tldr-pages GitHub repository and returns their normalized text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, github/).
package tldr
