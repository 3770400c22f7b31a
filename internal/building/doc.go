// Package building defines the building document sized by the SWH engine.
//
// A building document is a resolved snapshot of an energy model: its spaces
// with floor areas, multipliers, origins and surface centroids, plus the zone
// HVAC equipment that the control rules act on. Documents are loaded from
// JSON or YAML using the same decoders as the standards tables.
package building
