// Package swh implements the service-water-heating autosizing engine.
//
// Given a building document and read-only standards tables, the engine:
//
//  1. Surveys every space for hot-water demand (Survey).
//  2. Accumulates a 3×24 day-type/hour demand profile (Aggregate).
//  3. Locates the peak hour and its best successor (LocatePeak).
//  4. Sizes one mixed storage tank for the building (SizeTank).
//  5. Rates the water heater efficiency and skin losses (RateWaterHeater).
//  6. Estimates distribution pump head from space geometry (SizePump),
//     using a three-regime Darcy-Weisbach friction factor (FrictionFactor).
//
// Sizer ties the steps together for one building. All calculations are
// pure and single-threaded; a Sizer may be shared by concurrent callers.
//
// Units:
//
// Standards data carries flows in US gal/h and floor areas in ft²; results
// are reported in SI (m³, W, m³/s, Pa) with the imperial intermediates kept
// where they are useful for diagnostics.
package swh
