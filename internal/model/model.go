// Package model holds the catalog's records (Grid, Package, PackageInGrid),
// the attribute sets callers use to change them, and the Changeset that
// validates a change before anything touches storage.
package model
