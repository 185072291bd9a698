// Package amzcrawl extracts typed product, price and rating records from
// Amazon storefront HTML across regional marketplaces.
//
// This package contains domain types, pure domain logic (locale table,
// numeric normalization, filters) and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package amzcrawl
