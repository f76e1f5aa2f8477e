// Package mediumghost converts Medium's post export into a Ghost import file.
// Each exported post is translated into a Mobiledoc document, its images are
// cached locally, and the posts are collected into Ghost's import envelope.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, nethtml/, sqlite/).
package mediumghost
