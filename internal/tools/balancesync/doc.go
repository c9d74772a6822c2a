// Package balancesync checks web simulator defaults against the
// authoritative balance export.
//
// The simulator embeds its defaults as input value attributes; the export is
// the document produced by the balance-export command. A hand-maintained
// registry names which control maps to which config path and how units
// convert between the two. The check itself is pure: loading files and
// choosing exit codes belong to the command layer.
package balancesync
