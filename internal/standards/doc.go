// Package standards holds the read-only lookup tables that drive service
// water heating sizing.
//
// Two tables are loaded from a single JSON or YAML document:
//
//   - space_types: per building/space type hot-water demand (peak flow per
//     floor area, target temperature, schedule name)
//   - schedules: 24 hourly fractional multipliers per schedule name and
//     day type
//
// Tables are built once with Load or NewTables and are never mutated
// afterwards, so a *Tables value can be shared by any number of sizing runs.
//
// # Day Types
//
// Schedules are keyed by DayType. The wire tags match the standards data:
//
//	Default|Wkdy  -> Weekday
//	Sat           -> Saturday
//	Sun|Hol       -> SundayOrHoliday
//
// DayType.Next gives the calendar successor used when a peak hour falls at
// 23:00 and the following hour belongs to the next day type.
package standards
