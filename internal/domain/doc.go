// Package domain models Foursquare venue-search results.
//
// # Response Shape
//
// The v2 venues/search endpoint answers with an envelope whose only member
// of interest is response.venues:
//
//	{
//	  "meta": {"code": 200},
//	  "response": {
//	    "venues": [
//	      {"name": "Cafe A", "location": {"distance": 120, ...}, ...},
//	      ...
//	    ]
//	  }
//	}
//
// Every element must be an object with a string "name" and an object
// "location". Distance is in meters from the "near" point of the query and
// is only present when the API could compute it.
//
// # Validation
//
// [Extract] checks the shape top-down and stops at the first violation,
// returning a [StructuralError]. Venues validated before the violation have
// already been emitted; nothing after it is. Error messages number venues
// from 1 while [Venue.Index] counts from 0.
//
// # Distance
//
// A missing or non-integer location.distance (including JSON reals such as
// 12.5) reads as 0 rather than failing the venue.
package domain
