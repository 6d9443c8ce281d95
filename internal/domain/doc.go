// Package domain models a holiday courier that follows local midnight of
// December 25 around the globe once a year.
//
// # Stations
//
// A station is a named city with a fixed UTC offset in hours, a region tag and
// WGS-84 coordinates. Offsets may be fractional ("+5.5" for India, "+5.75" for
// Nepal). [NewStationTable] validates a table and fixes its east-to-west order:
// offset descending, input order kept on ties. Home base sits at the pole
// (90°N, 0°) with offset 0 and is never part of the table.
//
// # Resolution
//
// [StationTable.Resolve] is a pure function of the wall clock:
//
//	pre-mission  the easternmost station has not reached Dec 25 locally
//	             (also any empty table); current = home base
//	active       at least one station is on Dec 25; the one closest to local
//	             midnight is current and it plus every station east of it
//	             are visited
//	in-transit   some stations have finished but none is on Dec 25 (only
//	             possible with sparse tables); the last finished station is current
//	complete     every station has finished; visited is the closed loop
//
// Minutes remaining are counted to 00:00 on Dec 26 local time, plus one grace
// minute, so a station at exactly 00:00 still reports 1 minute left.
// Calendar checks compare month and day in each station's own year.
//
// # Log feed
//
// [MessageGenerator] draws one uniform value r per message:
//
//	r < 0.40         action template with the location name
//	0.40 <= r < 0.70 region flavour text (generic if the region is unknown)
//	0.70 <= r < 0.85 velocity or delivered count, 50/50
//	r >= 0.85        generic
//
// At home base only standby messages are used. [DeliveredCount] is derived from
// the clock modulo 1e7 ms and is not a running total.
package domain
