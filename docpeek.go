// Package docpeek provides hover previews for documentation sites.
// Given the preview target carried by a link, it fetches the target page,
// resolves the section the link points at into a short plain-text
// preview, caches it for the page session, and drives a tooltip from
// pointer events.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/).
package docpeek
