// Package persistence defines the on-disk image of a persisted region.
//
// A region is a fixed-layout struct whose first field is a Header. The whole
// struct is encoded in native byte order with no framing: the format tag at
// offset 0, the version at offset 8, then every field in declaration order.
//
// PLATFORM NOTES:
// - Byte order: native; a block written on a host with the opposite byte
//   order is detected (the format tag decodes byte-swapped) but not converted.
// - Alignment: every primitive field must sit at its natural alignment and
//   the struct must contain no implicit padding. LayoutOf enforces this.
package persistence
